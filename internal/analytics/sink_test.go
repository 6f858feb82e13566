package analytics

import (
	"testing"
	"time"

	"petrocore-backend/internal/chatbot"
)

// Both sink backends must satisfy the same behavioral contract, so the bulk
// of the coverage runs once per backend.
func forEachSink(t *testing.T, fn func(t *testing.T, sink Sink)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemorySink())
	})
	t.Run("sqlite", func(t *testing.T) {
		sink, err := NewSQLiteSink(":memory:")
		if err != nil {
			t.Fatalf("open sqlite sink: %v", err)
		}
		defer sink.Close()
		fn(t, sink)
	})
}

func seedSession(t *testing.T, sink Sink, id string, start time.Time, turns int, leadScore int, conv chatbot.ConversionEvent) {
	t.Helper()
	if err := sink.StartSession(id, chatbot.LangEnglish, start); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	for i := 0; i < turns; i++ {
		role := chatbot.RoleUser
		if i%2 == 1 {
			role = chatbot.RoleAssistant
		}
		err := sink.RecordTurn(TurnEvent{
			SessionID: id,
			Role:      role,
			Content:   "message",
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Language:  chatbot.LangEnglish,
		})
		if err != nil {
			t.Fatalf("RecordTurn: %v", err)
		}
	}
	if err := sink.UpdateSession(id, leadScore, chatbot.LangEnglish, conv); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
}

func TestSink_ReportWindow(t *testing.T) {
	forEachSink(t, func(t *testing.T, sink Sink) {
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		seedSession(t, sink, "inside-1", base, 4, 30, chatbot.ConversionNone)
		seedSession(t, sink, "inside-2", base.Add(time.Hour), 2, 80, chatbot.ConversionDemoRequested)
		seedSession(t, sink, "before", base.Add(-48*time.Hour), 2, 10, chatbot.ConversionNone)
		seedSession(t, sink, "after", base.Add(72*time.Hour), 2, 10, chatbot.ConversionNone)

		report, err := sink.Report(base.Add(-time.Hour), base.Add(24*time.Hour))
		if err != nil {
			t.Fatalf("Report: %v", err)
		}
		if report.TotalSessions != 2 {
			t.Errorf("TotalSessions = %d, want 2", report.TotalSessions)
		}
		if report.TotalMessages != 6 {
			t.Errorf("TotalMessages = %d, want 6", report.TotalMessages)
		}
		if report.LeadScoreBuckets["25-49"] != 1 || report.LeadScoreBuckets["75-100"] != 1 {
			t.Errorf("unexpected buckets: %v", report.LeadScoreBuckets)
		}
		if report.Conversions[chatbot.ConversionDemoRequested] != 1 {
			t.Errorf("unexpected conversions: %v", report.Conversions)
		}
		if report.ConversionRate != 0.5 {
			t.Errorf("ConversionRate = %.2f, want 0.50", report.ConversionRate)
		}
	})
}

func TestSink_StartSessionIdempotent(t *testing.T) {
	forEachSink(t, func(t *testing.T, sink Sink) {
		start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		if err := sink.StartSession("s-1", chatbot.LangEnglish, start); err != nil {
			t.Fatal(err)
		}
		seedSession(t, sink, "s-1", start.Add(time.Hour), 2, 40, chatbot.ConversionNone)

		report, err := sink.Report(start.Add(-time.Minute), start.Add(time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		// The second StartSession must not have moved the start time.
		if report.TotalSessions != 1 {
			t.Errorf("expected original start time kept, got %d sessions in window", report.TotalSessions)
		}
	})
}

func TestSink_IntentsDeduplicated(t *testing.T) {
	forEachSink(t, func(t *testing.T, sink Sink) {
		start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		seedSession(t, sink, "s-1", start, 0, 0, chatbot.ConversionNone)

		for _, intent := range []chatbot.Intent{
			chatbot.IntentGreeting, chatbot.IntentPricingInquiry, chatbot.IntentGreeting,
		} {
			if err := sink.RecordIntent("s-1", intent, 0.9); err != nil {
				t.Fatal(err)
			}
		}

		report, err := sink.Report(start.Add(-time.Minute), start.Add(time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		if report.IntentDistribution[chatbot.IntentGreeting] != 1 {
			t.Errorf("greeting counted %d times, want 1", report.IntentDistribution[chatbot.IntentGreeting])
		}
		if report.IntentDistribution[chatbot.IntentPricingInquiry] != 1 {
			t.Errorf("pricing counted %d times, want 1", report.IntentDistribution[chatbot.IntentPricingInquiry])
		}
	})
}

func TestSink_ConversionSticks(t *testing.T) {
	forEachSink(t, func(t *testing.T, sink Sink) {
		start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		seedSession(t, sink, "s-1", start, 0, 0, chatbot.ConversionNone)

		if err := sink.UpdateSession("s-1", 50, chatbot.LangEnglish, chatbot.ConversionContactProvided); err != nil {
			t.Fatal(err)
		}
		// Later neutral turns must not downgrade the conversion.
		if err := sink.UpdateSession("s-1", 55, chatbot.LangEnglish, chatbot.ConversionNone); err != nil {
			t.Fatal(err)
		}

		report, err := sink.Report(start.Add(-time.Minute), start.Add(time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		if report.Conversions[chatbot.ConversionContactProvided] != 1 {
			t.Errorf("conversion downgraded: %v", report.Conversions)
		}
		if report.ConversionRate != 1.0 {
			t.Errorf("ConversionRate = %.2f, want 1.00", report.ConversionRate)
		}
	})
}

func TestSink_UnknownSessionOpsAreSafe(t *testing.T) {
	forEachSink(t, func(t *testing.T, sink Sink) {
		if err := sink.RecordIntent("ghost", chatbot.IntentGreeting, 0.9); err != nil {
			t.Errorf("RecordIntent on unknown session: %v", err)
		}
		if err := sink.UpdateSession("ghost", 10, chatbot.LangEnglish, chatbot.ConversionNone); err != nil {
			t.Errorf("UpdateSession on unknown session: %v", err)
		}
		if err := sink.EndSession("ghost", time.Now()); err != nil {
			t.Errorf("EndSession on unknown session: %v", err)
		}
	})
}

func TestMemorySink_Prune(t *testing.T) {
	sink := NewMemorySink()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedSession(t, sink, "old", base.Add(-40*24*time.Hour), 2, 10, chatbot.ConversionNone)
	seedSession(t, sink, "recent", base, 2, 10, chatbot.ConversionNone)

	dropped := sink.Prune(base.Add(-30 * 24 * time.Hour))
	if dropped != 1 {
		t.Fatalf("Prune dropped %d, want 1", dropped)
	}
	if turns := sink.SessionTurns("old"); len(turns) != 0 {
		t.Errorf("pruned session still has %d turns", len(turns))
	}
	if turns := sink.SessionTurns("recent"); len(turns) != 2 {
		t.Errorf("recent session lost its turns: %d", len(turns))
	}
}

func TestMemorySink_SessionTurnsIsACopy(t *testing.T) {
	sink := NewMemorySink()
	start := time.Now().UTC()
	seedSession(t, sink, "s-1", start, 2, 10, chatbot.ConversionNone)

	turns := sink.SessionTurns("s-1")
	turns[0].Content = "mutated"
	if again := sink.SessionTurns("s-1"); again[0].Content == "mutated" {
		t.Error("SessionTurns returned an aliased slice")
	}
}
