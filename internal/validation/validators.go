package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/worthit/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

// enumNames maps each custom tag to its allowed values, for both validation
// and error messages.
var enumNames = map[string][]string{
	"category":     toStrings(models.Categories),
	"time_of_day":  toStrings(models.TimesOfDay),
	"rating":       toStrings(models.PhysicalRatings),
	"worth_it":     toStrings(models.WorthItOptions),
	"entry_type":   toStrings(models.EntryTypes),
	"memo_outcome": toStrings(models.MemoOutcomes),
}

func init() {
	Validate = validator.New()

	for tag, allowed := range enumNames {
		if err := Validate.RegisterValidation(tag, oneOf(allowed)); err != nil {
			panic(fmt.Sprintf("failed to register %s validator: %v", tag, err))
		}
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

// EntryInput is the user-supplied form of a new or edited entry.
type EntryInput struct {
	Action         string   `validate:"required"`
	Category       string   `validate:"required,category"`
	Context        []string `validate:"dive,time_of_day"`
	PhysicalRating string   `validate:"required,rating"`
	EmotionalTags  []string `validate:"dive,required"`
	WorthIt        string   `validate:"required,worth_it"`
	EntryType      string   `validate:"required,entry_type"`
	Note           string
}

// MemoInput leaves outcome and feeling optional; the entry store fills defaults.
type MemoInput struct {
	Outcome string `validate:"omitempty,memo_outcome"`
	Feeling string `validate:"omitempty,rating"`
	Note    string `validate:"max=150"`
}

type BehaviorInput struct {
	Name     string `validate:"required"`
	Category string `validate:"required,category"`
}

// Struct validates v and turns the first failure into a readable error.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())
	if allowed, ok := enumNames[fe.Tag()]; ok {
		return fmt.Errorf("invalid %s: %v (must be one of %s)", field, fe.Value(), strings.Join(allowed, ", "))
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Errorf("invalid %s", field)
	}
}

// SanitizeText trims whitespace and removes control characters except newline and tab
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// SplitList parses a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewEntry validates in and converts it to the core type.
func (in EntryInput) NewEntry() (models.NewEntry, error) {
	in.Action = SanitizeText(in.Action)
	in.Note = SanitizeText(in.Note)
	if err := Struct(in); err != nil {
		return models.NewEntry{}, err
	}

	context := make([]models.TimeOfDay, 0, len(in.Context))
	for _, c := range in.Context {
		context = append(context, models.TimeOfDay(c))
	}
	tags := in.EmotionalTags
	if tags == nil {
		tags = []string{}
	}

	return models.NewEntry{
		Action:         in.Action,
		Category:       models.Category(in.Category),
		Context:        context,
		PhysicalRating: models.PhysicalRating(in.PhysicalRating),
		EmotionalTags:  tags,
		WorthIt:        models.WorthIt(in.WorthIt),
		Note:           in.Note,
		EntryType:      models.EntryType(in.EntryType),
	}, nil
}

func (in MemoInput) NewMemo() (models.NewMemo, error) {
	in.Note = SanitizeText(in.Note)
	if err := Struct(in); err != nil {
		return models.NewMemo{}, err
	}
	return models.NewMemo{
		Outcome: models.MemoOutcome(in.Outcome),
		Feeling: models.PhysicalRating(in.Feeling),
		Note:    in.Note,
	}, nil
}

// Enum checks a single value against one of the registered enum tags.
func Enum(tag, value string) error {
	allowed, ok := enumNames[tag]
	if !ok {
		return fmt.Errorf("unknown enumeration %q", tag)
	}
	if err := Validate.Var(value, tag); err != nil {
		return fmt.Errorf("invalid %s: %s (must be one of %s)", strings.ReplaceAll(tag, "_", " "), value, strings.Join(allowed, ", "))
	}
	return nil
}
