package summarize

import (
	"strings"
	"testing"
)

const extractiveSample = "The proposed architecture improves throughput significantly. " +
	"Latency was measured across all deployment regions. " +
	"The evaluation covered fourteen production workloads. " +
	"Cost analysis shows a thirty percent reduction overall. " +
	"Future work includes adaptive scheduling for bursty traffic."

func TestSelectSentences_PrefersKeywordMatches(t *testing.T) {
	got := SelectSentences(extractiveSample, []string{"latency", "workloads"})

	if !strings.Contains(got, "Latency was measured") {
		t.Fatalf("expected latency sentence in %q", got)
	}
	if !strings.Contains(got, "fourteen production workloads") {
		t.Fatalf("expected workloads sentence in %q", got)
	}
	if strings.Contains(got, "Cost analysis") {
		t.Fatalf("did not expect unmatched sentence in %q", got)
	}
}

func TestSelectSentences_PreservesDocumentOrder(t *testing.T) {
	got := SelectSentences(extractiveSample, []string{"workloads", "latency"})

	latencyIdx := strings.Index(got, "Latency")
	workloadsIdx := strings.Index(got, "fourteen")
	if latencyIdx < 0 || workloadsIdx < 0 {
		t.Fatalf("expected both sentences in %q", got)
	}
	if latencyIdx > workloadsIdx {
		t.Fatalf("sentences out of document order: %q", got)
	}
}

func TestSelectSentences_FallsBackToLeadingSentences(t *testing.T) {
	got := SelectSentences(extractiveSample, []string{"nonexistent"})

	if !strings.HasPrefix(got, "The proposed architecture") {
		t.Fatalf("expected leading sentence first, got %q", got)
	}
	if count := strings.Count(got, ". ") + 1; count != fallbackSentenceCount {
		t.Fatalf("expected %d fallback sentences, got %d in %q", fallbackSentenceCount, count, got)
	}
}

func TestSelectSentences_NonEmptyForNonEmptyInput(t *testing.T) {
	got := SelectSentences(extractiveSample, nil)
	if got == "" {
		t.Fatal("expected non-empty extractive summary")
	}
}

func TestSelectSentences_EmptyInput(t *testing.T) {
	if got := SelectSentences("", []string{"anything"}); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestSelectSentences_CapsSelection(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("The benchmark results include throughput and latency numbers. ")
	}

	got := SelectSentences(b.String(), []string{"benchmark"})
	if count := strings.Count(got, "benchmark"); count > maxSelectedSentences {
		t.Fatalf("expected at most %d sentences, got %d", maxSelectedSentences, count)
	}
}

func TestSplitSentences_DropsShortFragments(t *testing.T) {
	sentences := splitSentences("Ok. No. This sentence is long enough to keep around.")
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(sentences), sentences)
	}
}
