package hclfunc

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func TestNewEvalContext(t *testing.T) {
	t.Run("nil variables", func(t *testing.T) {
		ctx := NewEvalContext(nil)
		if ctx.Variables != nil {
			t.Error("expected variables to be nil when none provided")
		}
		if _, ok := ctx.Functions["percent_off"]; !ok {
			t.Error("expected percent_off function to be present")
		}
	})

	t.Run("empty variables", func(t *testing.T) {
		if ctx := NewEvalContext(map[string]string{}); ctx.Variables != nil {
			t.Error("expected variables to be nil for an empty map")
		}
	})

	t.Run("with variables", func(t *testing.T) {
		ctx := NewEvalContext(map[string]string{"adhesion": "1000"})
		v := ctx.Variables["var"].GetAttr("adhesion")
		if v.AsString() != "1000" {
			t.Errorf("expected var.adhesion to be '1000', got %v", v)
		}
	})
}

func TestEvalContext_Expressions(t *testing.T) {
	ctx := NewEvalContextWithVars(map[string]string{"base": "550"})

	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"variable reference", `var.base`, "550"},
		{"function on variable", `percent_off(var.base, 10)`, "495"},
		{"number argument converts", `percent_off(200, 50)`, "100"},
		{"template", `"${upper("brl")}"`, "BRL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(tt.expr), "test.hcl", hcl.Pos{Line: 1, Column: 1})
			if diags.HasErrors() {
				t.Fatalf("parse failed: %s", diags.Error())
			}
			val, diags := expr.Value(ctx)
			if diags.HasErrors() {
				t.Fatalf("evaluation failed: %s", diags.Error())
			}
			if val.AsString() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, val.AsString())
			}
		})
	}
}
