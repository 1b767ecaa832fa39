package hungerhelper

import (
	"reflect"
	"testing"

	"github.com/hungerhelper/hungerhelper/api"
)

func TestNewReplyPlaceholder(t *testing.T) {
	reply := newReplyPlaceholder()
	if !reply.IsThinking {
		t.Error("placeholder must start in thinking state")
	}
	want := []string{stepAnalyzing, stepConsulting}
	if !reflect.DeepEqual(reply.ThinkingSteps, want) {
		t.Errorf("seed steps = %v, want %v", reply.ThinkingSteps, want)
	}
	if reply.ID == "" {
		t.Error("placeholder needs an id")
	}
}

func TestMergeChunk(t *testing.T) {
	t.Run("TextAppends", func(t *testing.T) {
		reply := newReplyPlaceholder()
		reply = mergeChunk(reply, api.StreamChunk{Text: "The Reeb Center "})
		reply = mergeChunk(reply, api.StreamChunk{Text: "is open today. "})
		// Repeated text is still appended; only steps dedupe.
		reply = mergeChunk(reply, api.StreamChunk{Text: "is open today. "})
		if reply.Text != "The Reeb Center is open today. is open today. " {
			t.Errorf("Text = %q", reply.Text)
		}
	})

	t.Run("StepsDedupe", func(t *testing.T) {
		reply := newReplyPlaceholder()
		reply = mergeChunk(reply, api.StreamChunk{Steps: []string{api.StepWebSearch}})
		reply = mergeChunk(reply, api.StreamChunk{Steps: []string{api.StepWebSearch, api.StepMapsLookup}})
		reply = mergeChunk(reply, api.StreamChunk{Steps: []string{stepAnalyzing}})
		want := []string{stepAnalyzing, stepConsulting, api.StepWebSearch, api.StepMapsLookup}
		if !reflect.DeepEqual(reply.ThinkingSteps, want) {
			t.Errorf("ThinkingSteps = %v, want %v", reply.ThinkingSteps, want)
		}
	})

	t.Run("SourcesReplaceWholesale", func(t *testing.T) {
		reply := newReplyPlaceholder()
		first := []api.Source{{URI: "https://a", Title: "A", Kind: api.SourceWeb}}
		second := []api.Source{{URI: "https://b", Title: "B", Kind: api.SourceMaps}}
		reply = mergeChunk(reply, api.StreamChunk{Sources: first})
		reply = mergeChunk(reply, api.StreamChunk{Sources: second})
		if !reflect.DeepEqual(reply.Sources, second) {
			t.Errorf("Sources = %v, want the later list only", reply.Sources)
		}
	})

	t.Run("EmptyChunkIsNoOp", func(t *testing.T) {
		reply := newReplyPlaceholder()
		reply = mergeChunk(reply, api.StreamChunk{Text: "hi"})
		merged := mergeChunk(reply, api.StreamChunk{})
		if !reflect.DeepEqual(merged, reply) {
			t.Errorf("empty chunk changed the message: %+v vs %+v", merged, reply)
		}
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		reply := newReplyPlaceholder()
		before := append([]string(nil), reply.ThinkingSteps...)
		_ = mergeChunk(reply, api.StreamChunk{Text: "x", Steps: []string{"New step"}})
		if !reflect.DeepEqual(reply.ThinkingSteps, before) || reply.Text != "" {
			t.Error("mergeChunk mutated its input")
		}
	})

	t.Run("FinalChunkFinalizes", func(t *testing.T) {
		reply := newReplyPlaceholder()
		sources := []api.Source{{URI: "https://a", Title: "A", Kind: api.SourceWeb}}
		reply = mergeChunk(reply, api.StreamChunk{Text: "done"})
		reply = mergeChunk(reply, api.StreamChunk{Sources: sources, Final: true})
		if reply.IsThinking {
			t.Error("terminal chunk must end the thinking phase")
		}
		if got := reply.ThinkingSteps[len(reply.ThinkingSteps)-1]; got != stepFormatting {
			t.Errorf("last step = %q, want %q", got, stepFormatting)
		}
		if !reflect.DeepEqual(reply.Sources, sources) {
			t.Errorf("Sources = %v", reply.Sources)
		}
	})

	t.Run("FinalChunkMergesPayload", func(t *testing.T) {
		reply := newReplyPlaceholder()
		reply = mergeChunk(reply, api.StreamChunk{Text: "The closest pantry "})
		sources := []api.Source{{URI: "https://maps", Title: "Reeb Center", Kind: api.SourceMaps}}
		reply = mergeChunk(reply, api.StreamChunk{
			Text:    "is the Reeb Center.",
			Steps:   []string{api.StepMapsLookup},
			Sources: sources,
			Final:   true,
		})
		if reply.Text != "The closest pantry is the Reeb Center." {
			t.Errorf("Text = %q, terminal chunk text was dropped", reply.Text)
		}
		want := []string{stepAnalyzing, stepConsulting, api.StepMapsLookup, stepFormatting}
		if !reflect.DeepEqual(reply.ThinkingSteps, want) {
			t.Errorf("ThinkingSteps = %v, want %v", reply.ThinkingSteps, want)
		}
		if !reflect.DeepEqual(reply.Sources, sources) {
			t.Errorf("Sources = %v", reply.Sources)
		}
		if reply.IsThinking {
			t.Error("terminal chunk must end the thinking phase")
		}
	})

	t.Run("RejectedAfterFinalize", func(t *testing.T) {
		reply := newReplyPlaceholder()
		reply = mergeChunk(reply, api.StreamChunk{Text: "final answer", Final: true})
		after := mergeChunk(reply, api.StreamChunk{Text: " late chunk", Steps: []string{"Late step"}})
		if !reflect.DeepEqual(after, reply) {
			t.Errorf("finalized reply accepted a chunk: %+v", after)
		}
	})
}

func TestFinalizeReply(t *testing.T) {
	t.Run("NilSourcesBecomeEmpty", func(t *testing.T) {
		reply := finalizeReply(newReplyPlaceholder(), nil)
		if reply.Sources == nil || len(reply.Sources) != 0 {
			t.Errorf("Sources = %v, want empty slice", reply.Sources)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		reply := finalizeReply(newReplyPlaceholder(), nil)
		again := finalizeReply(reply, []api.Source{{URI: "https://x"}})
		if !reflect.DeepEqual(again, reply) {
			t.Error("finalizing twice must not change the message")
		}
		var count int
		for _, s := range again.ThinkingSteps {
			if s == stepFormatting {
				count++
			}
		}
		if count != 1 {
			t.Errorf("formatting step appears %d times, want 1", count)
		}
	})
}

func TestFailReply(t *testing.T) {
	reply := newReplyPlaceholder()
	reply = mergeChunk(reply, api.StreamChunk{
		Text:    "partial answer that should be discarded",
		Sources: []api.Source{{URI: "https://stale"}},
	})
	failed := failReply(reply)

	if failed.Text != apologyText {
		t.Errorf("Text = %q, want the apology", failed.Text)
	}
	if len(failed.Sources) != 0 {
		t.Errorf("failed reply kept citations: %v", failed.Sources)
	}
	if failed.IsThinking {
		t.Error("failed reply must be finalized")
	}
	if got := failed.ThinkingSteps[len(failed.ThinkingSteps)-1]; got != stepFormatting {
		t.Errorf("last step = %q, want %q", got, stepFormatting)
	}

	// Failing an already-finished reply is a no-op.
	if again := failReply(failed); !reflect.DeepEqual(again, failed) {
		t.Error("failReply changed a finalized message")
	}
}
