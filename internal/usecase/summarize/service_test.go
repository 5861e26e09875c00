package summarize

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/pdf"
)

// queueCompleter returns queued responses in order, then fails
type queueCompleter struct {
	responses []string
	err       error
	calls     int
}

func (q *queueCompleter) Complete(_ context.Context, _ string) (string, error) {
	q.calls++
	if q.err != nil {
		return "", q.err
	}
	if len(q.responses) == 0 {
		return "", fmt.Errorf("no queued response")
	}
	response := q.responses[0]
	q.responses = q.responses[1:]
	return response, nil
}

type fakeSummaryRepo struct {
	items   map[uuid.UUID]*entities.Summary
	creates int
	updates int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{items: make(map[uuid.UUID]*entities.Summary)}
}

func (r *fakeSummaryRepo) Create(_ context.Context, s *entities.Summary) error {
	r.items[s.ID] = s
	r.creates++
	return nil
}

func (r *fakeSummaryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entities.Summary, error) {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, entities.ErrSummaryNotFound
	}
	return s, nil
}

func (r *fakeSummaryRepo) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Summary, error) {
	var out []*entities.Summary
	for _, s := range r.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) Count(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.items {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSummaryRepo) Update(_ context.Context, s *entities.Summary) error {
	r.items[s.ID] = s
	r.updates++
	return nil
}

func (r *fakeSummaryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return entities.ErrSummaryNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeArchiver struct {
	uploaded []string
	deleted  []string
}

func (a *fakeArchiver) UploadPDF(_ context.Context, objectName string, _ []byte) error {
	a.uploaded = append(a.uploaded, objectName)
	return nil
}

func (a *fakeArchiver) DeleteObject(_ context.Context, objectName string) error {
	a.deleted = append(a.deleted, objectName)
	return nil
}

const structuredResponse = `[OVERVIEW]
The report evaluates three storage engines for time series data.

[KEY INSIGHTS]
- Compression ratio dominates total cost
- Write amplification varies by an order of magnitude

[RISKS]
Benchmark workloads may not match production.

[RECOMMENDATIONS]
Pilot the leading engine with production traffic.`

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{MaxTextLen: 50000},
	}
}

func newTestService(repo *fakeSummaryRepo, completer *queueCompleter, archive Archiver) *service {
	logger := zap.NewNop()
	svc := NewService(repo, completer, NewKeywordExtractor(nil, logger), NewRegexSectionParser(), archive, testConfig(), logger)
	return svc.(*service)
}

func storedSummary(repo *fakeSummaryRepo, userID uuid.UUID) *entities.Summary {
	s := entities.NewSummary(userID, []string{"paper.pdf"}, entities.ContextGeneral, entities.RoleProfessional, false)
	s.Overview = "A short overview of the findings in the report."
	s.KeyInsights = "- One insight\n- Another insight"
	s.Risks = "Some risk."
	s.AbstractiveSummary = s.Overview
	s.SetKeywords([]string{"findings", "report"})
	repo.items[s.ID] = s
	return s
}

func TestSummarizeText_PopulatesAllFields(t *testing.T) {
	repo := newFakeSummaryRepo()
	svc := newTestService(repo, &queueCompleter{responses: []string{structuredResponse}}, nil)

	userID := uuid.New()
	summary := entities.NewSummary(userID, []string{"bench.pdf"}, entities.ContextAnalyst, entities.RoleResearcher, false)
	text := "Storage engines differ in compression ratio. Write amplification varies widely. " +
		"Compression determines total cost of ownership in most deployments."

	if err := svc.summarizeText(context.Background(), summary, text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(summary.Overview, "three storage engines") {
		t.Errorf("overview: %q", summary.Overview)
	}
	if !strings.Contains(summary.KeyInsights, "Compression ratio") {
		t.Errorf("key insights: %q", summary.KeyInsights)
	}
	if summary.Risks == "" || summary.Recommendations == "" {
		t.Errorf("expected risks and recommendations, got %+v", summary)
	}
	if summary.AbstractiveSummary != summary.Overview {
		t.Error("abstractive summary should mirror the overview")
	}
	if summary.ExtractiveSummary == "" {
		t.Error("expected non-empty extractive summary")
	}
	if len(summary.KeywordList()) == 0 {
		t.Error("expected keywords from the frequency fallback")
	}
}

func TestSummarizeText_EmptyText(t *testing.T) {
	repo := newFakeSummaryRepo()
	svc := newTestService(repo, &queueCompleter{}, nil)

	summary := entities.NewSummary(uuid.New(), []string{"blank.pdf"}, entities.ContextGeneral, entities.RoleStudent, false)
	err := svc.summarizeText(context.Background(), summary, "   ")
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestSummarize_NoFiles(t *testing.T) {
	svc := newTestService(newFakeSummaryRepo(), &queueCompleter{}, nil)

	_, err := svc.Summarize(context.Background(), uuid.New(), Input{
		ContextType: entities.ContextGeneral,
		UserRole:    entities.RoleStudent,
	})

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected bad request AppError, got %v", err)
	}
}

func TestSummarize_InvalidContextType(t *testing.T) {
	svc := newTestService(newFakeSummaryRepo(), &queueCompleter{}, nil)

	_, err := svc.Summarize(context.Background(), uuid.New(), Input{
		Files:       []pdf.File{{Name: "doc.pdf", Content: []byte("%PDF-")}},
		ContextType: "board",
		UserRole:    entities.RoleStudent,
	})
	if err == nil {
		t.Fatal("expected error for unknown context type")
	}
}

func TestRefine_ShortenNeverProducesLongerText(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)
	originalOverview := summary.Overview

	long := strings.Repeat("an unhelpfully verbose rewrite ", 20)
	svc := newTestService(repo, &queueCompleter{responses: []string{long, long}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, entities.ActionShorten, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refined.Overview != originalOverview {
		t.Errorf("shorten must keep the original when the rewrite is longer, got %q", refined.Overview)
	}
}

func TestRefine_ShortenApplied(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)

	svc := newTestService(repo, &queueCompleter{responses: []string{"Shorter overview.", "Shorter insights."}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, entities.ActionShorter, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refined.Overview != "Shorter overview." {
		t.Errorf("overview: %q", refined.Overview)
	}
	if refined.KeyInsights != "Shorter insights." {
		t.Errorf("key insights: %q", refined.KeyInsights)
	}
	if refined.AbstractiveSummary != refined.Overview {
		t.Error("abstractive summary should track the overview")
	}
	if repo.updates != 1 {
		t.Errorf("expected one persisted update, got %d", repo.updates)
	}
}

func TestRefine_EmptyResponseKeepsOriginal(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)
	originalOverview := summary.Overview

	svc := newTestService(repo, &queueCompleter{responses: []string{"", ""}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, entities.ActionRefine, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refined.Overview != originalOverview {
		t.Errorf("empty rewrite must keep the original, got %q", refined.Overview)
	}
	if repo.updates != 0 {
		t.Errorf("unchanged summary must not be persisted, got %d updates", repo.updates)
	}
}

func TestRefine_EmptyRewriteSkipsPersistence(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)
	originalOverview := summary.Overview

	svc := newTestService(repo, &queueCompleter{responses: []string{""}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, "", "cost analysis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refined.Overview != originalOverview {
		t.Errorf("empty rewrite must keep the original, got %q", refined.Overview)
	}
	if repo.updates != 0 {
		t.Errorf("unchanged summary must not be persisted, got %d updates", repo.updates)
	}
}

func TestRefine_FocusAreaRewritesOverview(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)
	originalInsights := summary.KeyInsights

	svc := newTestService(repo, &queueCompleter{responses: []string{"Cost-focused rewrite."}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, "", "cost analysis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refined.Overview != "Cost-focused rewrite." {
		t.Errorf("overview: %q", refined.Overview)
	}
	if refined.KeyInsights != originalInsights {
		t.Error("focus rewrite must leave key insights untouched")
	}
}

func TestRefine_Regenerate(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)

	svc := newTestService(repo, &queueCompleter{responses: []string{structuredResponse}}, nil)

	refined, err := svc.Refine(context.Background(), userID, summary.ID, entities.ActionRegenerate, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(refined.Overview, "three storage engines") {
		t.Errorf("overview: %q", refined.Overview)
	}
	if !strings.Contains(refined.KeyInsights, "Write amplification") {
		t.Errorf("key insights: %q", refined.KeyInsights)
	}
}

func TestRefine_InvalidAction(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)

	svc := newTestService(repo, &queueCompleter{}, nil)

	_, err := svc.Refine(context.Background(), userID, summary.ID, "embellish", "")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected bad request AppError, got %v", err)
	}
}

func TestRefine_NotFound(t *testing.T) {
	svc := newTestService(newFakeSummaryRepo(), &queueCompleter{}, nil)

	_, err := svc.Refine(context.Background(), uuid.New(), uuid.New(), entities.ActionShorten, "")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected not found AppError, got %v", err)
	}
}

func TestRefine_ModelErrorDoesNotPersist(t *testing.T) {
	repo := newFakeSummaryRepo()
	userID := uuid.New()
	summary := storedSummary(repo, userID)

	svc := newTestService(repo, &queueCompleter{err: fmt.Errorf("upstream down")}, nil)

	if _, err := svc.Refine(context.Background(), userID, summary.ID, entities.ActionShorten, ""); err == nil {
		t.Fatal("expected refinement error")
	}
	if repo.updates != 0 {
		t.Errorf("failed refinement must not persist, got %d updates", repo.updates)
	}
}

func TestDelete_RemovesArchivedObjects(t *testing.T) {
	repo := newFakeSummaryRepo()
	archive := &fakeArchiver{}
	userID := uuid.New()
	summary := storedSummary(repo, userID)
	prefix := fmt.Sprintf("uploads/%s/%s", userID, summary.ID)
	summary.SourceObject = &prefix

	svc := newTestService(repo, &queueCompleter{}, archive)

	if err := svc.Delete(context.Background(), userID, summary.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("record should be deleted")
	}
	if len(archive.deleted) != 1 || !strings.HasPrefix(archive.deleted[0], prefix) {
		t.Errorf("expected archived object removal under %q, got %v", prefix, archive.deleted)
	}
}

func TestDelete_OtherUsersSummary(t *testing.T) {
	repo := newFakeSummaryRepo()
	owner := uuid.New()
	summary := storedSummary(repo, owner)

	svc := newTestService(repo, &queueCompleter{}, nil)

	err := svc.Delete(context.Background(), uuid.New(), summary.ID)
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected not found AppError, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Error("record must survive a non-owner delete")
	}
}
