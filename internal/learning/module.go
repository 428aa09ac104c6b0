package learning

import (
	"slices"

	"github.com/google/uuid"
)

// ModuleType is the discriminator shared with the remote catalogue and the templates.
type ModuleType string

const (
	ModuleTypeVideo      ModuleType = "video"
	ModuleTypeLink       ModuleType = "link"
	ModuleTypeFile       ModuleType = "file"
	ModuleTypeELearning  ModuleType = "elearning"
	ModuleTypeFaceToFace ModuleType = "face-to-face"
)

// ModuleTypes is the closed set of discriminators. Adding one means touching the
// factory dispatch table and the rule table too.
var ModuleTypes = []ModuleType{
	ModuleTypeVideo,
	ModuleTypeLink,
	ModuleTypeFile,
	ModuleTypeELearning,
	ModuleTypeFaceToFace,
}

// Module is one of *VideoModule, *LinkModule, *FileModule, *ELearningModule or
// *FaceToFaceModule. Switch on the concrete type for variant fields.
type Module interface {
	Base() *ModuleBase
	isModule()
}

// ModuleBase holds the fields every variant has.
type ModuleBase struct {
	ID                string      `json:"id,omitempty"`
	Type              ModuleType  `json:"type"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Duration          int         `json:"duration"`
	FormattedDuration string      `json:"formattedDuration,omitempty"`
	Cost              *Cost       `json:"cost,omitempty"`
	Optional          bool        `json:"optional"`
	Audiences         []*Audience `json:"audiences,omitempty"`

	// badDuration holds duration input that was neither seconds nor an ISO-8601 duration.
	badDuration string
}

func (b *ModuleBase) Base() *ModuleBase { return b }

// DurationInput returns the author's duration text when it could not be read as a duration.
func (b *ModuleBase) DurationInput() (string, bool) {
	return b.badDuration, b.badDuration != ""
}

type VideoModule struct {
	ModuleBase
	Location string `json:"location"`
}

type LinkModule struct {
	ModuleBase
	URL        string `json:"url"`
	IsOptional bool   `json:"isOptional"`
}

type FileModule struct {
	ModuleBase
	URL      string `json:"url"`
	FileSize int    `json:"fileSize"`
}

type ELearningModule struct {
	ModuleBase
	StartPage string `json:"startPage"`
}

type FaceToFaceModule struct {
	ModuleBase
	ProductCode string   `json:"productCode"`
	Events      []*Event `json:"events"`
}

func (*VideoModule) isModule()      {}
func (*LinkModule) isModule()       {}
func (*FileModule) isModule()       {}
func (*ELearningModule) isModule()  {}
func (*FaceToFaceModule) isModule() {}

// AddEvent appends a newly authored event. Unsaved events get a generated id so
// they can be addressed before the catalogue assigns one.
func (m *FaceToFaceModule) AddEvent(e *Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	slices.SortStableFunc(e.DateRanges, SortDateRanges)
	m.Events = append(m.Events, e)
}

// EventByID returns the event with the given id, or nil.
func (m *FaceToFaceModule) EventByID(id string) *Event {
	for _, e := range m.Events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
