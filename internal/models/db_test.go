package models

import "testing"

func TestDemoRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to DemoRequestStatus
		want     bool
	}{
		{DemoStatusNew, DemoStatusContacted, true},
		{DemoStatusNew, DemoStatusQualified, true},
		{DemoStatusNew, DemoStatusClosed, true},
		{DemoStatusContacted, DemoStatusQualified, true},
		{DemoStatusQualified, DemoStatusClosed, true},
		{DemoStatusContacted, DemoStatusNew, false},
		{DemoStatusClosed, DemoStatusQualified, false},
		{DemoStatusNew, DemoStatusNew, false},
		{DemoStatusNew, DemoRequestStatus("BOGUS"), false},
		{DemoRequestStatus("BOGUS"), DemoStatusClosed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range []DemoRequestStatus{DemoStatusNew, DemoStatusContacted, DemoStatusQualified, DemoStatusClosed} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if DemoRequestStatus("NEW ").IsValid() {
		t.Error("padded status should be invalid")
	}

	for _, s := range []GDPRRequestStatus{GDPRStatusReceived, GDPRStatusInProgress, GDPRStatusCompleted, GDPRStatusRejected} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if GDPRRequestStatus("DONE").IsValid() {
		t.Error("unknown gdpr status should be invalid")
	}

	for _, typ := range []GDPRRequestType{GDPRTypeAccess, GDPRTypeErasure, GDPRTypePortability} {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if GDPRRequestType("deletion").IsValid() {
		t.Error("unknown gdpr type should be invalid")
	}
}
