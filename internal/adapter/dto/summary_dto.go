package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/domain/entities"
)

// SummarizeRequest represents the multipart form fields of a
// summarization request. Files arrive alongside under the "files" key.
type SummarizeRequest struct {
	ContextType string `form:"context_type" validate:"omitempty,oneof=executive student analyst general"`
	UserRole    string `form:"user_role" validate:"omitempty,oneof=student researcher professional"`
	IsPrivate   bool   `form:"is_private"`
}

// RefineRequest represents the request to refine an existing summary
type RefineRequest struct {
	Action    string `json:"action" form:"action" validate:"required_without=FocusArea"`
	FocusArea string `json:"focus_area,omitempty" form:"focus_area" validate:"omitempty,max=200"`
}

// SummaryResponse represents the full API view of a stored summary
type SummaryResponse struct {
	ID                 uuid.UUID         `json:"id"`
	FileNames          []string          `json:"file_names"`
	ContextType        string            `json:"context_type"`
	UserRole           string            `json:"user_role"`
	MemoryType         string            `json:"memory_type"`
	Overview           string            `json:"overview"`
	KeyInsights        string            `json:"key_insights"`
	Risks              string            `json:"risks,omitempty"`
	Recommendations    string            `json:"recommendations,omitempty"`
	ExtractiveSummary  string            `json:"extractive_summary,omitempty"`
	AbstractiveSummary string            `json:"abstractive_summary,omitempty"`
	Keywords           []string          `json:"keywords"`
	Sections           map[string]string `json:"sections"`
	IsPrivate          bool              `json:"is_private"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// SummarizeResponse is the response to a fresh summarization run
type SummarizeResponse struct {
	Summary    SummaryResponse `json:"summary"`
	TotalPages int             `json:"total_pages"`
	TotalChars int             `json:"total_chars"`
}

// SummaryListItem is the compact history view of a summary
type SummaryListItem struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileNames   []string  `json:"file_names"`
	ContextType string    `json:"context_type"`
	MemoryType  string    `json:"memory_type"`
	Preview     string    `json:"preview"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListSummariesResponse represents the paginated summary history
type ListSummariesResponse struct {
	Summaries  []SummaryListItem   `json:"summaries"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalItems int64 `json:"total_items"`
}

const previewLength = 100

// FromSummary converts a summary entity to its full API view
func FromSummary(s *entities.Summary) SummaryResponse {
	return SummaryResponse{
		ID:                 s.ID,
		FileNames:          s.FileNameList(),
		ContextType:        string(s.ContextType),
		UserRole:           string(s.UserRole),
		MemoryType:         string(s.MemoryType()),
		Overview:           s.Overview,
		KeyInsights:        s.KeyInsights,
		Risks:              s.Risks,
		Recommendations:    s.Recommendations,
		ExtractiveSummary:  s.ExtractiveSummary,
		AbstractiveSummary: s.AbstractiveSummary,
		Keywords:           s.KeywordList(),
		Sections:           s.SectionMap(),
		IsPrivate:          s.IsPrivate,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToListItem converts a summary entity to its history view
func ToListItem(s *entities.Summary) SummaryListItem {
	return SummaryListItem{
		ID:          s.ID,
		FileName:    s.FirstFileName(),
		FileNames:   s.FileNameList(),
		ContextType: string(s.ContextType),
		MemoryType:  string(s.MemoryType()),
		Preview:     s.PreviewText(previewLength),
		CreatedAt:   s.CreatedAt,
	}
}
