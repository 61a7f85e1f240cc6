package textforms

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// timestampLayouts are tried in order against RawMessage.SentTimestamp.
var timestampLayouts = []string{
	"01-02-06 15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Builder assembles data records from tokenized messages.
type Builder struct {
	localizer driven.Localizer
	locale    string
	newID     func() string
	now       func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithIDGenerator sets the record ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// WithClock sets the clock used when a message has no usable timestamp.
func WithClock(fn func() time.Time) Option {
	return func(b *Builder) {
		if fn != nil {
			b.now = fn
		}
	}
}

// NewBuilder creates a builder replying in locale.
func NewBuilder(localizer driven.Localizer, locale string, opts ...Option) *Builder {
	b := &Builder{
		localizer: localizer,
		locale:    locale,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates the record for msg. A nil schema marks the form as unknown.
func (b *Builder) Build(msg *domain.RawMessage, env Envelope, schema *domain.FormSchema) *domain.DataRecord {
	rec := domain.NewDataRecord(b.newID())
	rec.Form = env.FormCode
	rec.From = msg.From
	rec.SMSMessage = *msg
	rec.ReportedDate = b.reportedDate(msg)

	if schema == nil {
		rec.AddError(domain.CodeUnknownForm, b.localizer.Translate(b.locale, driven.MsgUnknownForm, env.FormCode))
	} else {
		coerced := Coerce(schema, env.Tokens)
		rec.Fields = coerced.Fields
		rec.FieldOrder = coerced.Order
		for _, fe := range coerced.Errors {
			rec.AddError(fe.Code, b.fieldErrorMessage(fe))
		}
		if coerced.Extra > 0 {
			rec.AddError(domain.CodeExtraFields, b.localizer.Translate(b.locale, driven.MsgExtraFields))
		}
	}

	rec.Responses = append(rec.Responses, domain.Response{
		To:      msg.From,
		Message: b.localizer.Translate(b.locale, driven.MsgFormReceived),
	})
	return rec
}

func (b *Builder) fieldErrorMessage(fe FieldError) string {
	switch fe.Code {
	case domain.CodeInvalidInteger:
		return b.localizer.Translate(b.locale, driven.MsgInvalidInt, fe.Key, fe.Token)
	default:
		return b.localizer.Translate(b.locale, driven.MsgMissingField, fe.Key)
	}
}

func (b *Builder) reportedDate(msg *domain.RawMessage) int64 {
	if ts, ok := parseTimestamp(msg.SentTimestamp); ok {
		return ts.UnixMilli()
	}
	if !msg.ReceivedAt.IsZero() {
		return msg.ReceivedAt.UnixMilli()
	}
	return b.now().UnixMilli()
}

// parseTimestamp reads the phone-reported send time. Times without a zone are UTC.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}
