package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContextType is the audience framing that shapes the summary's tone
type ContextType string

const (
	ContextExecutive ContextType = "executive"
	ContextStudent   ContextType = "student"
	ContextAnalyst   ContextType = "analyst"
	ContextGeneral   ContextType = "general"
)

// IsValid checks if the context type is valid
func (c ContextType) IsValid() bool {
	switch c {
	case ContextExecutive, ContextStudent, ContextAnalyst, ContextGeneral:
		return true
	}
	return false
}

// UserRole is the reader persona, independent of context type
type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleResearcher   UserRole = "researcher"
	RoleProfessional UserRole = "professional"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleResearcher, RoleProfessional:
		return true
	}
	return false
}

// MemoryType is the retention classification derived from the privacy flag
type MemoryType string

const (
	MemoryShortTerm MemoryType = "short_term"
	MemoryLongTerm  MemoryType = "long_term"
)

// RefineAction is a supported summary refinement action
type RefineAction string

const (
	ActionShorten      RefineAction = "shorten"
	ActionRefine       RefineAction = "refine"
	ActionRegenerate   RefineAction = "regenerate"
	ActionShorter      RefineAction = "shorter"
	ActionDetailed     RefineAction = "detailed"
	ActionFocusMethods RefineAction = "focus_methods"
	ActionFocusResults RefineAction = "focus_results"
)

// IsValid checks if the refine action is valid
func (a RefineAction) IsValid() bool {
	switch a {
	case ActionShorten, ActionRefine, ActionRegenerate, ActionShorter,
		ActionDetailed, ActionFocusMethods, ActionFocusResults:
		return true
	}
	return false
}

// Summary is a persisted summary record. Keywords, sections and file names
// are stored as JSONB columns.
type Summary struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`

	FileNames   datatypes.JSON `json:"file_names" gorm:"type:jsonb;not null"`
	ContextType ContextType    `json:"context_type" gorm:"type:varchar(50);not null"`
	UserRole    UserRole       `json:"user_role" gorm:"type:varchar(50);not null"`

	Overview           string `json:"overview" gorm:"type:text;not null"`
	KeyInsights        string `json:"key_insights" gorm:"type:text;not null"`
	Risks              string `json:"risks" gorm:"type:text"`
	Recommendations    string `json:"recommendations" gorm:"type:text"`
	ExtractiveSummary  string `json:"extractive_summary" gorm:"type:text"`
	AbstractiveSummary string `json:"abstractive_summary" gorm:"type:text"`

	Keywords datatypes.JSON `json:"keywords" gorm:"type:jsonb;default:'[]'"`
	Sections datatypes.JSON `json:"sections" gorm:"type:jsonb;default:'{}'"`

	IsPrivate    bool    `json:"is_private" gorm:"default:false;not null"`
	SourceObject *string `json:"-" gorm:"type:varchar(500)"` // object key of the archived upload, if any

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the GORM table name
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary creates a summary record with encoded JSONB fields
func NewSummary(userID uuid.UUID, fileNames []string, contextType ContextType, userRole UserRole, isPrivate bool) *Summary {
	now := time.Now()
	names, _ := json.Marshal(fileNames)
	return &Summary{
		ID:          uuid.New(),
		UserID:      userID,
		FileNames:   names,
		ContextType: contextType,
		UserRole:    userRole,
		IsPrivate:   isPrivate,
		Keywords:    datatypes.JSON([]byte("[]")),
		Sections:    datatypes.JSON([]byte("{}")),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MemoryType derives the retention classification from the privacy flag.
// There is deliberately no stored column for this: private records are
// always short_term and public ones long_term.
func (s *Summary) MemoryType() MemoryType {
	if s.IsPrivate {
		return MemoryShortTerm
	}
	return MemoryLongTerm
}

// SetKeywords encodes the ordered keyword list
func (s *Summary) SetKeywords(keywords []string) {
	if keywords == nil {
		keywords = []string{}
	}
	b, _ := json.Marshal(keywords)
	s.Keywords = b
}

// KeywordList decodes the ordered keyword list
func (s *Summary) KeywordList() []string {
	var keywords []string
	_ = json.Unmarshal(s.Keywords, &keywords)
	if keywords == nil {
		keywords = []string{}
	}
	return keywords
}

// SetSections encodes the section map
func (s *Summary) SetSections(sections map[string]string) {
	if sections == nil {
		sections = map[string]string{}
	}
	b, _ := json.Marshal(sections)
	s.Sections = b
}

// SectionMap decodes the section map
func (s *Summary) SectionMap() map[string]string {
	var sections map[string]string
	_ = json.Unmarshal(s.Sections, &sections)
	if sections == nil {
		sections = map[string]string{}
	}
	return sections
}

// FileNameList decodes the uploaded file names
func (s *Summary) FileNameList() []string {
	var names []string
	_ = json.Unmarshal(s.FileNames, &names)
	if names == nil {
		names = []string{}
	}
	return names
}

// FirstFileName returns the first uploaded file name, for previews
func (s *Summary) FirstFileName() string {
	names := s.FileNameList()
	if len(names) == 0 {
		return "Unknown"
	}
	return names[0]
}

// PreviewText returns the leading part of the overview for history lists
func (s *Summary) PreviewText(maxLen int) string {
	if len(s.Overview) <= maxLen {
		return s.Overview
	}
	return s.Overview[:maxLen] + "..."
}

// CombinedContent concatenates the stored content fields. Refinement
// actions operate on this text, not the original document.
func (s *Summary) CombinedContent() string {
	content := s.Overview + "\n\n" + s.KeyInsights
	if s.Risks != "" {
		content += "\n\n" + s.Risks
	}
	if s.Recommendations != "" {
		content += "\n\n" + s.Recommendations
	}
	return content
}
