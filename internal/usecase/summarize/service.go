package summarize

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/internal/domain/repositories"
	"github.com/docbrief/docbrief/pkg/ai"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/pdf"
)

// Archiver stores uploaded source files. Satisfied by the MinIO client;
// nil when archival is disabled.
type Archiver interface {
	UploadPDF(ctx context.Context, objectName string, content []byte) error
	DeleteObject(ctx context.Context, objectName string) error
}

// Input carries one summarization request's uploads and options
type Input struct {
	Files       []pdf.File
	ContextType entities.ContextType
	UserRole    entities.UserRole
	IsPrivate   bool
}

// Result is the outcome of a summarization run
type Result struct {
	Summary    *entities.Summary
	TotalPages int
	TotalChars int
}

// Service defines the summarization use case
type Service interface {
	// Summarize extracts text from the uploaded PDFs and generates a
	// structured summary
	Summarize(ctx context.Context, userID uuid.UUID, input Input) (*Result, error)

	// Refine rewrites an existing summary according to the given action
	Refine(ctx context.Context, userID, id uuid.UUID, action entities.RefineAction, focusArea string) (*entities.Summary, error)

	// Get returns a single summary owned by the user
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.Summary, error)

	// List returns the user's summary history, newest first
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Summary, int64, error)

	// Delete removes a summary and its archived source, if any
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo     repositories.SummaryRepository
	llm      ai.Completer
	keywords *KeywordExtractor
	sections SectionParser
	archive  Archiver
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates the summarization service. archive may be nil when
// object storage is disabled.
func NewService(
	repo repositories.SummaryRepository,
	llm ai.Completer,
	keywords *KeywordExtractor,
	sections SectionParser,
	archive Archiver,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		llm:      llm,
		keywords: keywords,
		sections: sections,
		archive:  archive,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *service) Summarize(ctx context.Context, userID uuid.UUID, input Input) (*Result, error) {
	if len(input.Files) == 0 {
		return nil, errors.ErrNoFiles()
	}
	if !input.ContextType.IsValid() {
		return nil, errors.ErrInvalidContextType(string(input.ContextType))
	}
	if !input.UserRole.IsValid() {
		return nil, errors.ErrInvalidUserRole(string(input.UserRole))
	}

	extraction, err := pdf.ExtractFiles(input.Files)
	if err != nil {
		s.logger.Warn("pdf extraction failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		name := input.Files[0].Name
		return nil, errors.ErrPDFExtractionFailed(name, err)
	}

	summary := entities.NewSummary(userID, extraction.FileNames, input.ContextType, input.UserRole, input.IsPrivate)

	if err := s.summarizeText(ctx, summary, extraction.CombinedText); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, summary); err != nil {
		s.logger.Error("failed to persist summary",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, errors.ErrDBQueryFailed(err)
	}

	// Only public uploads are archived. Archival failure never fails
	// the request; it only drops the stored object reference.
	if s.archive != nil && !input.IsPrivate {
		s.archiveSources(ctx, summary, input.Files)
	}

	s.logger.Info("summary created",
		zap.String("summary_id", summary.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("files", len(input.Files)),
		zap.Int("pages", extraction.TotalPages),
		zap.String("context_type", string(input.ContextType)))

	return &Result{
		Summary:    summary,
		TotalPages: extraction.TotalPages,
		TotalChars: extraction.TotalChars,
	}, nil
}

// summarizeText runs the full pipeline (keywords, sections, extractive
// selection, abstractive generation) over already-extracted text and
// fills in the summary's content fields.
func (s *service) summarizeText(ctx context.Context, summary *entities.Summary, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ErrPDFExtractionFailed(summary.FirstFileName(), entities.ErrEmptyDocument)
	}

	keywords := s.keywords.Extract(ctx, text, DefaultKeywordCount)
	summary.SetKeywords(keywords)
	summary.SetSections(s.sections.Parse(text))
	summary.ExtractiveSummary = SelectSentences(text, keywords)

	prompt := buildSummaryPrompt(text, summary.ContextType, summary.UserRole, keywords, s.cfg.LLM.MaxTextLen)
	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("summary generation failed", zap.Error(err))
		return errors.ErrGenerationFailed(err)
	}

	parsed := ParseStructuredResponse(response)
	if parsed.Overview == "" && parsed.KeyInsights == "" {
		return errors.ErrGenerationFailed(fmt.Errorf("model returned no usable content"))
	}

	summary.Overview = parsed.Overview
	summary.KeyInsights = parsed.KeyInsights
	summary.Risks = parsed.Risks
	summary.Recommendations = parsed.Recommendations
	summary.AbstractiveSummary = parsed.Overview
	return nil
}

// archiveSources uploads the source PDFs and records the object prefix.
func (s *service) archiveSources(ctx context.Context, summary *entities.Summary, files []pdf.File) {
	prefix := fmt.Sprintf("uploads/%s/%s", summary.UserID, summary.ID)
	for i, file := range files {
		objectName := fmt.Sprintf("%s/%02d-%s", prefix, i, file.Name)
		if err := s.archive.UploadPDF(ctx, objectName, file.Content); err != nil {
			s.logger.Warn("source archival failed",
				zap.String("summary_id", summary.ID.String()),
				zap.String("object", objectName),
				zap.Error(err))
			return
		}
	}
	summary.SourceObject = &prefix
	if err := s.repo.Update(ctx, summary); err != nil {
		s.logger.Warn("failed to record archive reference",
			zap.String("summary_id", summary.ID.String()),
			zap.Error(err))
	}
}

func (s *service) Refine(ctx context.Context, userID, id uuid.UUID, action entities.RefineAction, focusArea string) (*entities.Summary, error) {
	if focusArea == "" && !action.IsValid() {
		return nil, errors.ErrInvalidAction(string(action))
	}

	summary, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if goerrors.Is(err, entities.ErrSummaryNotFound) {
			return nil, errors.ErrSummaryNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed(err)
	}

	changed, err := s.applyRefinement(ctx, summary, action, focusArea)
	if err != nil {
		return nil, err
	}
	if !changed {
		// The model produced nothing usable; keep the stored record
		// untouched rather than bumping its timestamp.
		return summary, nil
	}

	if err := s.repo.Update(ctx, summary); err != nil {
		s.logger.Error("failed to persist refined summary",
			zap.String("summary_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDBQueryFailed(err)
	}

	s.logger.Info("summary refined",
		zap.String("summary_id", id.String()),
		zap.String("action", string(action)),
		zap.String("focus_area", focusArea))

	return summary, nil
}

// applyRefinement mutates the summary's content fields in memory and
// reports whether anything changed. The record is only written back
// after every model call has succeeded, so a failed refinement never
// leaves a half-rewritten record.
func (s *service) applyRefinement(ctx context.Context, summary *entities.Summary, action entities.RefineAction, focusArea string) (bool, error) {
	switch {
	case focusArea != "":
		return s.rewriteCombined(ctx, summary, action, focusArea)

	case action == entities.ActionRegenerate:
		if err := s.regenerate(ctx, summary); err != nil {
			return false, err
		}
		return true, nil

	case action == entities.ActionDetailed,
		action == entities.ActionFocusMethods,
		action == entities.ActionFocusResults:
		return s.rewriteCombined(ctx, summary, action, "")

	default:
		// shorten, shorter and refine operate on each content field
		// independently so the summary keeps its structure.
		overview, err := s.refineField(ctx, summary.Overview, action, focusArea)
		if err != nil {
			return false, err
		}
		insights, err := s.refineField(ctx, summary.KeyInsights, action, focusArea)
		if err != nil {
			return false, err
		}
		changed := overview != summary.Overview || insights != summary.KeyInsights
		if changed {
			summary.Overview = overview
			summary.KeyInsights = insights
			summary.AbstractiveSummary = overview
		}
		return changed, nil
	}
}

// refineField rewrites one content field. Shortening actions never
// produce text longer than the input; an empty model response keeps
// the original text.
func (s *service) refineField(ctx context.Context, content string, action entities.RefineAction, focusArea string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	response, err := s.llm.Complete(ctx, buildRefinePrompt(action, content, focusArea))
	if err != nil {
		return "", errors.ErrRefinementFailed(err)
	}

	refined := strings.TrimSpace(stripMarkdownFences(response))
	if refined == "" {
		return content, nil
	}
	if (action == entities.ActionShorten || action == entities.ActionShorter) && len(refined) > len(content) {
		return content, nil
	}
	return refined, nil
}

// rewriteCombined rewrites the whole summary into a new overview, for
// actions that change emphasis rather than length.
func (s *service) rewriteCombined(ctx context.Context, summary *entities.Summary, action entities.RefineAction, focusArea string) (bool, error) {
	content := summary.CombinedContent()
	response, err := s.llm.Complete(ctx, buildRefinePrompt(action, content, focusArea))
	if err != nil {
		return false, errors.ErrRefinementFailed(err)
	}

	rewritten := strings.TrimSpace(stripMarkdownFences(response))
	if rewritten == "" {
		return false, nil
	}
	summary.Overview = rewritten
	summary.AbstractiveSummary = rewritten
	return true, nil
}

// regenerate re-runs the structured generation prompt over the current
// summary content. The original document is not retained, so this is a
// fresh pass over what the summary already says.
func (s *service) regenerate(ctx context.Context, summary *entities.Summary) error {
	prompt := buildSummaryPrompt(summary.CombinedContent(), summary.ContextType, summary.UserRole, summary.KeywordList(), s.cfg.LLM.MaxTextLen)
	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return errors.ErrRefinementFailed(err)
	}

	parsed := ParseStructuredResponse(response)
	if parsed.Overview == "" && parsed.KeyInsights == "" {
		return errors.ErrRefinementFailed(fmt.Errorf("model returned no usable content"))
	}

	summary.Overview = parsed.Overview
	summary.KeyInsights = parsed.KeyInsights
	if parsed.Risks != "" {
		summary.Risks = parsed.Risks
	}
	if parsed.Recommendations != "" {
		summary.Recommendations = parsed.Recommendations
	}
	summary.AbstractiveSummary = parsed.Overview
	return nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Summary, error) {
	summary, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if goerrors.Is(err, entities.ErrSummaryNotFound) {
			return nil, errors.ErrSummaryNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed(err)
	}
	return summary, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Summary, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	summaries, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.ErrDBQueryFailed(err)
	}
	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, 0, errors.ErrDBQueryFailed(err)
	}
	return summaries, total, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	summary, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if goerrors.Is(err, entities.ErrSummaryNotFound) {
			return errors.ErrSummaryNotFound(id.String())
		}
		return errors.ErrDBQueryFailed(err)
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if goerrors.Is(err, entities.ErrSummaryNotFound) {
			return errors.ErrSummaryNotFound(id.String())
		}
		return errors.ErrDBQueryFailed(err)
	}

	// Best effort: the record is already gone, a leftover object is
	// harmless and gets flagged in the logs.
	if s.archive != nil && summary.SourceObject != nil {
		for i, name := range summary.FileNameList() {
			objectName := fmt.Sprintf("%s/%02d-%s", *summary.SourceObject, i, name)
			if err := s.archive.DeleteObject(ctx, objectName); err != nil {
				s.logger.Warn("failed to delete archived source",
					zap.String("summary_id", id.String()),
					zap.String("object", objectName),
					zap.Error(err))
			}
		}
	}

	s.logger.Info("summary deleted",
		zap.String("summary_id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}
