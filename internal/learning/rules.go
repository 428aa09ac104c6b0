package learning

import (
	"slices"
	"time"

	"lpg-management/internal/dates"
	"lpg-management/internal/validation"
)

// Rule tables. Groups are named after the form field they guard, plus the module
// type for variant fields, so a wizard step can validate exactly what it shows.

type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func rule[T any](msg string, valid func(T) bool, groups ...string) validation.Rule[T] {
	return validation.Rule[T]{Groups: groups, Message: msg, Valid: valid}
}

// variantRule only applies to modules of concrete type V; other variants pass.
func variantRule[V Module](msg string, valid func(V) bool, groups ...string) validation.Rule[Module] {
	return rule(msg, func(m Module) bool {
		v, ok := m.(V)
		return !ok || valid(v)
	}, groups...)
}

func required(s string) bool { return validation.Is(s, "required") }

func isURL(s string) bool { return s == "" || validation.Is(s, "url") }

func isDate(s string) bool {
	_, err := dates.ParseDate(s)
	return err == nil
}

func isClock(s string) bool {
	_, err := dates.ParseClock(s)
	return err == nil
}

func ModuleRules(clock Clock) validation.RuleSet[Module] {
	return validation.RuleSet[Module]{
		{Name: "title", Rules: []validation.Rule[Module]{
			rule("validation.module.title.empty", func(m Module) bool { return required(m.Base().Title) }, "title"),
		}},
		{Name: "description", Rules: []validation.Rule[Module]{
			rule("validation.module.description.empty", func(m Module) bool { return required(m.Base().Description) }, "description"),
		}},
		{Name: "duration", Rules: []validation.Rule[Module]{
			rule("validation.module.duration.invalid", func(m Module) bool {
				_, bad := m.Base().DurationInput()
				return !bad && m.Base().Duration >= 0
			}, "duration"),
		}},
		{Name: "cost", Rules: []validation.Rule[Module]{
			rule("validation.module.cost.invalid", func(m Module) bool {
				c := m.Base().Cost
				return c == nil || c.Numeric()
			}, "cost"),
			rule("validation.module.cost.negative", func(m Module) bool {
				return !m.Base().Cost.Decimal().IsNegative()
			}, "cost"),
		}},
		{Name: "location", Rules: []validation.Rule[Module]{
			variantRule("validation.module.location.empty", func(v *VideoModule) bool { return required(v.Location) }, "location", "video"),
			variantRule("validation.module.location.invalid", func(v *VideoModule) bool { return isURL(v.Location) }, "location", "video"),
		}},
		{Name: "url", Rules: []validation.Rule[Module]{
			variantRule("validation.module.url.empty", func(l *LinkModule) bool { return required(l.URL) }, "url", "link"),
			variantRule("validation.module.url.invalid", func(l *LinkModule) bool { return isURL(l.URL) }, "url", "link"),
			variantRule("validation.module.file.empty", func(f *FileModule) bool { return required(f.URL) }, "url", "file"),
		}},
		{Name: "fileSize", Rules: []validation.Rule[Module]{
			variantRule("validation.module.fileSize.invalid", func(f *FileModule) bool { return f.FileSize > 0 }, "fileSize", "file"),
		}},
		{Name: "startPage", Rules: []validation.Rule[Module]{
			variantRule("validation.module.startPage.empty", func(e *ELearningModule) bool { return required(e.StartPage) }, "startPage", "elearning"),
		}},
		{Name: "productCode", Rules: []validation.Rule[Module]{
			variantRule("validation.module.productCode.empty", func(f *FaceToFaceModule) bool { return required(f.ProductCode) }, "productCode", "face-to-face"),
		}},
		validation.Dive("events", []string{"events"}, func(m Module) []*Event {
			if f, ok := m.(*FaceToFaceModule); ok {
				return f.Events
			}
			return nil
		}, EventRules(clock)),
	}
}

func EventRules(clock Clock) validation.RuleSet[*Event] {
	return validation.RuleSet[*Event]{
		{Name: "dateRanges", Rules: []validation.Rule[*Event]{
			rule("validation.event.dateRanges.empty", func(e *Event) bool { return len(e.DateRanges) > 0 }, "dateRanges"),
		}},
		// Events the catalogue already holds keep their dates, past ones included.
		validation.Dive("dateRanges", []string{"dateRanges"}, func(e *Event) []DateRange {
			if e.ID != "" {
				return nil
			}
			return e.DateRanges
		}, DateRangeRules(clock)),
		validation.Dive("dateRanges", []string{"dateRanges"}, func(e *Event) []DateRange {
			if e.ID == "" {
				return nil
			}
			return e.DateRanges
		}, scheduledDateRangeRules()),
		validation.Dive("venue", []string{"venue"}, func(e *Event) []Venue { return []Venue{e.Venue} }, VenueRules()),
		{Name: "cancellationReason", Rules: []validation.Rule[*Event]{
			rule("validation.event.cancellationReason.empty", func(e *Event) bool {
				return e.Status != EventStatusCancelled || e.CancellationReason != CancellationReasonNone
			}, "cancellationReason"),
		}},
	}
}

// DateRangeRules validates a date range entered on the add/edit form: the date must be in the future.
func DateRangeRules(clock Clock) validation.RuleSet[DateRange] {
	rs := scheduledDateRangeRules()
	rs[0].Rules = append(rs[0].Rules, rule("validation.event.date.past", func(d DateRange) bool {
		if !isDate(d.Date) {
			return true
		}
		return d.Date > clock.now().UTC().Format(dates.DateLayout)
	}, "date"))
	return rs
}

// scheduledDateRangeRules checks the shape of a date range without regard to today.
func scheduledDateRangeRules() validation.RuleSet[DateRange] {
	return validation.RuleSet[DateRange]{
		{Name: "date", Rules: []validation.Rule[DateRange]{
			rule("validation.event.date.empty", func(d DateRange) bool { return required(d.Date) }, "date"),
			rule("validation.event.date.invalid", func(d DateRange) bool { return d.Date == "" || isDate(d.Date) }, "date"),
		}},
		{Name: "startTime", Rules: []validation.Rule[DateRange]{
			rule("validation.event.startTime.empty", func(d DateRange) bool { return required(d.StartTime) }, "startTime"),
			rule("validation.event.startTime.invalid", func(d DateRange) bool { return d.StartTime == "" || isClock(d.StartTime) }, "startTime"),
		}},
		{Name: "endTime", Rules: []validation.Rule[DateRange]{
			rule("validation.event.endTime.empty", func(d DateRange) bool { return required(d.EndTime) }, "endTime"),
			rule("validation.event.endTime.invalid", func(d DateRange) bool { return d.EndTime == "" || isClock(d.EndTime) }, "endTime"),
			rule("validation.event.endTime.beforeStartTime", func(d DateRange) bool {
				start, err1 := dates.ParseClock(d.StartTime)
				end, err2 := dates.ParseClock(d.EndTime)
				if err1 != nil || err2 != nil {
					return true
				}
				return end.After(start)
			}, "endTime"),
		}},
	}
}

// VenueRules leaves minCapacity <= capacity unchecked.
func VenueRules() validation.RuleSet[Venue] {
	return validation.RuleSet[Venue]{
		{Name: "location", Rules: []validation.Rule[Venue]{
			rule("validation.event.location.empty", func(v Venue) bool { return required(v.Location) }, "location"),
		}},
		{Name: "address", Rules: []validation.Rule[Venue]{
			rule("validation.event.address.empty", func(v Venue) bool { return required(v.Address) }, "address"),
		}},
		{Name: "capacity", Rules: []validation.Rule[Venue]{
			rule("validation.event.capacity.invalid", func(v Venue) bool { return validation.Is(v.Capacity, "gt=0") }, "capacity"),
		}},
		{Name: "minCapacity", Rules: []validation.Rule[Venue]{
			rule("validation.event.minCapacity.invalid", func(v Venue) bool { return validation.Is(v.MinCapacity, "gt=0") }, "minCapacity"),
		}},
	}
}

func AudienceRules() validation.RuleSet[*Audience] {
	return validation.RuleSet[*Audience]{
		{Name: "name", Rules: []validation.Rule[*Audience]{
			rule("validation.audience.name.empty", func(a *Audience) bool { return required(a.Name) }, "name"),
			rule("validation.audience.name.tooLong", func(a *Audience) bool { return validation.Is(a.Name, "max=40") }, "name"),
		}},
		{Name: "type", Rules: []validation.Rule[*Audience]{
			rule("validation.audience.type.invalid", func(a *Audience) bool { return slices.Contains(AudienceTypes, a.Type) }, "type"),
		}},
		{Name: "requiredBy", Rules: []validation.Rule[*Audience]{
			rule("validation.audience.requiredBy.empty", func(a *Audience) bool {
				return a.Type != AudienceTypeRequiredLearning || a.RequiredBy != ""
			}, "requiredBy"),
			rule("validation.audience.requiredBy.invalid", func(a *Audience) bool {
				return a.RequiredBy == "" || isDate(a.RequiredBy) || validation.Is(a.RequiredBy, "datetime=2006-01-02T15:04:05Z07:00")
			}, "requiredBy"),
		}},
		{Name: "frequency", Rules: []validation.Rule[*Audience]{
			rule("validation.audience.frequency.invalid", func(a *Audience) bool {
				return a.Frequency == "" || dates.IsISODuration(a.Frequency)
			}, "frequency"),
		}},
	}
}

func CourseRules() validation.RuleSet[*Course] {
	return validation.RuleSet[*Course]{
		{Name: "title", Rules: []validation.Rule[*Course]{
			rule("validation.course.title.empty", func(c *Course) bool { return required(c.Title) }, "title"),
		}},
		{Name: "shortDescription", Rules: []validation.Rule[*Course]{
			rule("validation.course.shortDescription.empty", func(c *Course) bool { return required(c.ShortDescription) }, "shortDescription"),
			rule("validation.course.shortDescription.tooLong", func(c *Course) bool { return validation.Is(c.ShortDescription, "max=160") }, "shortDescription"),
		}},
		{Name: "description", Rules: []validation.Rule[*Course]{
			rule("validation.course.description.empty", func(c *Course) bool { return required(c.Description) }, "description"),
			rule("validation.course.description.tooLong", func(c *Course) bool { return validation.Is(c.Description, "max=1500") }, "description"),
		}},
		{Name: "price", Rules: []validation.Rule[*Course]{
			rule("validation.course.price.invalid", func(c *Course) bool {
				return c.Price == nil || (c.Price.Numeric() && !c.Price.Decimal().IsNegative())
			}, "price"),
		}},
	}
}

func LearningProviderRules() validation.RuleSet[*LearningProvider] {
	return validation.RuleSet[*LearningProvider]{
		{Name: "name", Rules: []validation.Rule[*LearningProvider]{
			rule("validation.learningProvider.name.empty", func(lp *LearningProvider) bool { return required(lp.Name) }, "name"),
		}},
	}
}

func CancellationPolicyRules() validation.RuleSet[*CancellationPolicy] {
	return validation.RuleSet[*CancellationPolicy]{
		{Name: "name", Rules: []validation.Rule[*CancellationPolicy]{
			rule("validation.cancellationPolicy.name.empty", func(p *CancellationPolicy) bool { return required(p.Name) }, "name"),
		}},
		{Name: "shortVersion", Rules: []validation.Rule[*CancellationPolicy]{
			rule("validation.cancellationPolicy.shortVersion.empty", func(p *CancellationPolicy) bool { return required(p.ShortVersion) }, "shortVersion"),
		}},
		{Name: "fullVersion", Rules: []validation.Rule[*CancellationPolicy]{
			rule("validation.cancellationPolicy.fullVersion.empty", func(p *CancellationPolicy) bool { return required(p.FullVersion) }, "fullVersion"),
		}},
	}
}

func TermsAndConditionsRules() validation.RuleSet[*TermsAndConditions] {
	return validation.RuleSet[*TermsAndConditions]{
		{Name: "name", Rules: []validation.Rule[*TermsAndConditions]{
			rule("validation.termsAndConditions.name.empty", func(t *TermsAndConditions) bool { return required(t.Name) }, "name"),
		}},
		{Name: "content", Rules: []validation.Rule[*TermsAndConditions]{
			rule("validation.termsAndConditions.content.empty", func(t *TermsAndConditions) bool { return required(t.Content) }, "content"),
		}},
	}
}

func NewModuleValidator(clock Clock) *validation.Validator[Module] {
	return validation.New[Module](ModuleFactory{}, ModuleRules(clock))
}

func NewEventValidator(clock Clock) *validation.Validator[*Event] {
	return validation.New[*Event](EventFactory{}, EventRules(clock))
}

func NewDateRangeValidator(clock Clock) *validation.Validator[DateRange] {
	return validation.New[DateRange](DateRangeFactory{}, DateRangeRules(clock))
}

func NewVenueValidator() *validation.Validator[Venue] {
	return validation.New[Venue](VenueFactory{}, VenueRules())
}

func NewAudienceValidator() *validation.Validator[*Audience] {
	return validation.New[*Audience](AudienceFactory{}, AudienceRules())
}

func NewCourseValidator() *validation.Validator[*Course] {
	return validation.New[*Course](CourseFactory{}, CourseRules())
}

func NewLearningProviderValidator() *validation.Validator[*LearningProvider] {
	return validation.New[*LearningProvider](LearningProviderFactory{}, LearningProviderRules())
}

func NewCancellationPolicyValidator() *validation.Validator[*CancellationPolicy] {
	return validation.New[*CancellationPolicy](CancellationPolicyFactory{}, CancellationPolicyRules())
}

func NewTermsAndConditionsValidator() *validation.Validator[*TermsAndConditions] {
	return validation.New[*TermsAndConditions](TermsAndConditionsFactory{}, TermsAndConditionsRules())
}
