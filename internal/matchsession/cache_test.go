package matchsession

import (
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestDoTossThenStartMatchClearsPending(t *testing.T) {
	c := New()
	c.DoToss("FIX1", "TEAMA")
	if winner, ok := c.PendingToss("FIX1"); !ok || winner != "TEAMA" {
		t.Fatalf("pending toss = %v,%v want TEAMA,true", winner, ok)
	}

	c.StartMatch("FIX1", &Session{})
	if _, ok := c.PendingToss("FIX1"); ok {
		t.Fatal("expected pending toss cleared after start_match")
	}
	if _, ok := c.Get("FIX1"); !ok {
		t.Fatal("expected session installed")
	}
}

func TestFinishRemovesSessionAndRecordsResult(t *testing.T) {
	c := New()
	c.StartMatch("FIX2", &Session{})
	c.Finish("FIX2", core.Match{ID: "FIX2", IsTie: true})

	if _, ok := c.Get("FIX2"); ok {
		t.Fatal("expected session removed after finish")
	}
	m, ok := c.TakeCompleted("FIX2")
	if !ok || m.ID != "FIX2" {
		t.Fatalf("completed result = %v,%v", m, ok)
	}
	if _, ok := c.TakeCompleted("FIX2"); ok {
		t.Fatal("expected completed result cleared after take")
	}
}

func TestResetDropsSessionWithoutResult(t *testing.T) {
	c := New()
	c.StartMatch("FIX3", &Session{})
	c.Reset("FIX3")
	if _, ok := c.Get("FIX3"); ok {
		t.Fatal("expected session removed by reset")
	}
	if _, ok := c.TakeCompleted("FIX3"); ok {
		t.Fatal("reset should not record a completed result")
	}
}
