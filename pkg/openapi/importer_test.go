package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/openapi"
	"github.com/goliatone/go-forminterp/pkg/program"
)

const accountsDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/sessions": {
      "post": {
        "operationId": "createSession",
        "summary": "Sign in",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string", "default": "guest"},
                  "password": {"type": "string", "format": "password"},
                  "token": {"type": "string", "writeOnly": true},
                  "remember": {"type": "boolean"},
                  "attempts": {"type": "integer"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    },
    "/health": {
      "get": {
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func TestOperations(t *testing.T) {
	ops, err := openapi.Operations(context.Background(), []byte(accountsDoc))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []openapi.Operation{
		{ID: "createSession", Method: "POST", Path: "/sessions", Summary: "Sign in"},
		{ID: "get:/health", Method: "GET", Path: "/health"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_BuildsProgram(t *testing.T) {
	prog, err := openapi.Import(context.Background(), []byte(accountsDoc), "createSession")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	want := program.Program{
		Name: "createSession",
		Fields: []program.FieldDescriptor{
			{Name: "password", Type: program.FieldTypePassword, AllowEmpty: program.Bool(false)},
			{Name: "username", Type: program.FieldTypeString, AllowEmpty: program.Bool(false), DefaultValue: "guest"},
			{Name: "token", Type: program.FieldTypePassword, AllowEmpty: program.Bool(true)},
			{Name: "Sign in", Type: program.FieldTypeButton, Callback: "createSession", Args: []string{"password", "username", "token"}},
		},
	}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_ButtonDispatches(t *testing.T) {
	prog, err := openapi.Import(context.Background(), []byte(accountsDoc), "createSession")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	var got []string
	controller := interp.NewController(map[string]interp.Callback{
		"createSession": func(args ...string) error {
			got = args
			return nil
		},
	})
	form, err := interp.Render(prog, controller)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	_ = form.SetValue("username", "alice")
	_ = form.SetValue("password", "pw")
	if err := form.Click(context.Background(), "Sign in"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if diff := cmp.Diff([]string{"pw", "alice", ""}, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_OperationWithoutBody(t *testing.T) {
	prog, err := openapi.Import(context.Background(), []byte(accountsDoc), "get:/health")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(prog.Fields) != 1 || prog.Fields[0].Name != "get:/health" || len(prog.Fields[0].Args) != 0 {
		t.Fatalf("unexpected program %+v", prog)
	}
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := openapi.Import(ctx, []byte(accountsDoc), "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Import(ctx, nil, "x"); !errors.Is(err, openapi.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	empty := `{"openapi": "3.0.3", "info": {"title": "t", "version": "1"}, "paths": {}}`
	if _, err := openapi.Operations(ctx, []byte(empty)); !errors.Is(err, openapi.ErrNoOperations) {
		t.Fatalf("expected ErrNoOperations, got %v", err)
	}
	if _, err := openapi.Operations(ctx, []byte("{not json")); err == nil {
		t.Fatalf("expected load error")
	}
}
