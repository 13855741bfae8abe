package interp

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestController_Lookup(t *testing.T) {
	var nilCtrl *Controller
	if _, ok := nilCtrl.Lookup("go"); ok {
		t.Fatalf("nil controller resolves nothing")
	}

	ctrl := NewController(map[string]Callback{
		"go":   func(...string) error { return nil },
		"hole": nil,
	})
	if _, ok := ctrl.Lookup("go"); !ok {
		t.Fatalf("expected go to resolve")
	}
	if _, ok := ctrl.Lookup("hole"); ok {
		t.Fatalf("nil callbacks are not invocable")
	}
	if _, ok := ctrl.Lookup("missing"); ok {
		t.Fatalf("missing callbacks should not resolve")
	}
	if diff := cmp.Diff([]string{"go", "hole"}, ctrl.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestController_CopiesInput(t *testing.T) {
	callbacks := map[string]Callback{"go": func(...string) error { return nil }}
	ctrl := NewController(callbacks)
	delete(callbacks, "go")

	if _, ok := ctrl.Lookup("go"); !ok {
		t.Fatalf("controller should not alias the caller's map")
	}
}

type session struct {
	user string
}

func (s *session) Login(args ...string) error {
	if len(args) > 0 {
		s.user = args[0]
	}
	return nil
}

func TestController_MethodValueBindsReceiver(t *testing.T) {
	s := &session{}
	form, err := Render(loginProgram(), NewController(map[string]Callback{"go": s.Login}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	_ = form.SetValue("U", "alice")
	if err := form.Click(context.Background(), "Login"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if s.user != "alice" {
		t.Fatalf("expected receiver state updated, got %q", s.user)
	}
}
