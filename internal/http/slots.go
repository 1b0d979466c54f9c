package http

import (
	"net/http"
	"strconv"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/format"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/notify"
)

// slotLabels are the display strings the views render next to the raw slot
// fields: the long Italian date, the period and category wording and the
// color associated with the department section.
type slotLabels struct {
	DateLabel     string `json:"date_label"`
	PeriodLabel   string `json:"period_label"`
	CategoryLabel string `json:"category_label"`
	SectionColor  string `json:"section_color"`
}

func labelsFor(slot model.Slot) slotLabels {
	return slotLabels{
		DateLabel:     format.Date(slot.Date),
		PeriodLabel:   format.PeriodText(slot.TimePeriod),
		CategoryLabel: format.GenderCategoryText(slot.GenderCategory),
		SectionColor:  format.SectionColor(slot.Department),
	}
}

type decoratedSlot struct {
	model.Slot
	slotLabels
}

type slotListResponse struct {
	Slots       []decoratedSlot `json:"slots"`
	Total       int             `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
	HasNext     bool            `json:"has_next"`
	HasPrev     bool            `json:"has_prev"`
}

func boolQuery(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.SlotFilters{
		Date:           q.Get("date"),
		TimePeriod:     q.Get("time_period"),
		Department:     q.Get("department"),
		GenderCategory: q.Get("gender_category"),
		IsLocked:       boolQuery(r, "is_locked"),
	}

	// Only the newest listing request of this session may answer; a
	// superseded one is cancelled mid-flight.
	ctx, done := s.begin(r, "slots.list")
	defer done()

	page, err := s.client(r).Slots(ctx, listOptions(r), filters)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	decorated := make([]decoratedSlot, 0, len(page.Slots))
	for _, slot := range page.Slots {
		decorated = append(decorated, decoratedSlot{Slot: slot, slotLabels: labelsFor(slot)})
	}
	writeJSON(w, http.StatusOK, slotListResponse{
		Slots:       decorated,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
		HasNext:     page.HasNext,
		HasPrev:     page.HasPrev,
	})
}

func (s *Server) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	details, err := s.client(r).Slot(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		model.SlotDetails
		slotLabels
	}{details, labelsFor(details.Slot)})
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	slot, err := s.client(r).CreateSlot(r.Context(), req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (s *Server) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req model.UpdateSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	slot, err := s.client(r).UpdateSlot(r.Context(), id, req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := s.client(r).DeleteSlot(r.Context(), id); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Slot eliminato"})
}

func (s *Server) handleConfirmSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	slot, err := s.client(r).ConfirmSlot(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	s.notifier(sessionFrom(r.Context()).id).Show("Slot confermato", "Le email di conferma sono state inviate", model.SeveritySuccess, notify.DefaultDuration)
	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleGenerateLetters(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	data, contentType, err := s.client(r).GenerateLetters(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=lettere_slot_"+strconv.Itoa(id)+".docx")
	_, _ = w.Write(data)
}

func (s *Server) handleSlotEnums(w http.ResponseWriter, r *http.Request) {
	enums, err := s.client(r).SlotEnums(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enums)
}

func (s *Server) handleAvailableDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.client(r).AvailableDates(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"available_dates": dates})
}

func (s *Server) handleOrganizationInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.client(r).OrganizationInfo(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	enrollments, err := s.client(r).SlotEnrollments(r.Context(), id, boolQuery(r, "waiting_list"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Enrollment{"enrollments": enrollments})
}

func (s *Server) handleCreateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req model.CreateEnrollmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	enrollment, err := s.client(r).CreateEnrollment(r.Context(), id, req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollment)
}

func (s *Server) handleDeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := s.client(r).DeleteEnrollment(r.Context(), id); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Iscrizione eliminata"})
}

func (s *Server) handleSetWaitingList(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req struct {
		IsInWaitingList bool `json:"is_in_waiting_list"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	enrollment, err := s.client(r).SetEnrollmentWaitingList(r.Context(), id, req.IsInWaitingList)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollment)
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req model.UpdateStudentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	student, err := s.client(r).UpdateStudent(r.Context(), id, req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) handleListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := s.client(r).Schools(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if schools == nil {
		schools = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"schools": schools})
}

func (s *Server) handleCreateSchool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := s.client(r).CreateSchool(r.Context(), req.Name); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Scuola creata"})
}
