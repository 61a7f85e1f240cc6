package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/logger"
)

// FacilityResolver links data records to the facility registered with the
// sender's phone and queues the clinic notification.
type FacilityResolver struct {
	store      driven.DocumentStore
	forms      driven.FormSchemaSource
	localizer  driven.Localizer
	taskLocale string
}

// NewFacilityResolver creates a resolver. Clinic summaries are rendered in taskLocale.
func NewFacilityResolver(
	store driven.DocumentStore,
	forms driven.FormSchemaSource,
	localizer driven.Localizer,
	taskLocale string,
) *FacilityResolver {
	return &FacilityResolver{
		store:      store,
		forms:      forms,
		localizer:  localizer,
		taskLocale: taskLocale,
	}
}

// Resolve attaches the facility registered with rec.From, if any.
// When the facility is a clinic a pending task carrying the field summary
// is added, addressed to the clinic's contact phone.
func (r *FacilityResolver) Resolve(ctx context.Context, rec *domain.DataRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", domain.ErrInvalidInput)
	}

	phone := strings.TrimSpace(rec.From)
	if phone == "" {
		rec.RelatedEntities.Clinic = nil
		return nil
	}

	rows, err := r.store.QueryByKey(ctx, domain.IndexFacilityByPhone, phone)
	if err != nil {
		return storeErr(fmt.Errorf("querying facility for %s: %w", phone, err))
	}
	if len(rows) == 0 {
		rec.RelatedEntities.Clinic = nil
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	if len(rows) > 1 {
		logger.Warn("%d facilities registered with %s, using %s", len(rows), phone, rows[0].ID)
	}

	doc, err := domain.DocumentFromJSON(rows[0].Value)
	if err != nil {
		return fmt.Errorf("decoding facility %s: %w", rows[0].ID, err)
	}
	facility, err := domain.ContactFromDocument(doc)
	if err != nil {
		return fmt.Errorf("decoding facility %s: %w", rows[0].ID, err)
	}
	if facility.ID == "" {
		facility.ID = rows[0].ID
	}
	rec.RelatedEntities.Clinic = facility

	if facility.IsClinic() {
		r.addClinicTask(rec, facility)
	}
	return nil
}

func (r *FacilityResolver) addClinicTask(rec *domain.DataRecord, clinic *domain.Contact) {
	summary := r.Summary(rec)
	if summary == "" {
		return
	}

	to := ""
	if clinic.Contact != nil {
		to = clinic.Contact.Phone
	}
	rec.Tasks = append(rec.Tasks, domain.Task{
		State:    domain.TaskStatePending,
		Messages: []domain.Response{{To: to, Message: summary}},
	})
}

// Summary renders the record's fields as localized "label: value" pairs in
// form order. Unknown forms render as the empty string.
func (r *FacilityResolver) Summary(rec *domain.DataRecord) string {
	schema, ok := r.forms.Schema(rec.Form)
	if !ok {
		return ""
	}

	pairs := make([]domain.LabeledValue, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		v, ok := rec.Field(f.Key)
		if !ok {
			continue
		}
		pairs = append(pairs, domain.LabeledValue{
			Label: f.Label(r.taskLocale),
			Value: v.String(),
		})
	}
	if len(pairs) == 0 {
		return ""
	}
	return r.localizer.FormatSummary(r.taskLocale, pairs)
}
