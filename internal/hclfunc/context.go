// Package hclfunc builds the HCL evaluation context used when decoding price
// list files. It exposes the custom functions from Functions() and resolved
// catalog variables under the 'var' namespace.
package hclfunc

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// NewEvalContext creates an evaluation context with the price list functions
// and, when variables is non-empty, the variables under 'var'.
//
// Example usage:
//
//	ctx := NewEvalContext(map[string]string{"adhesion": "1000"})
//	diags := gohcl.DecodeBody(file.Body, ctx, &cfg)
func NewEvalContext(variables map[string]string) *hcl.EvalContext {
	if len(variables) == 0 {
		return &hcl.EvalContext{
			Functions: Functions(),
		}
	}
	return NewEvalContextWithVars(variables)
}

// NewEvalContextWithVars creates an evaluation context where every variable
// is reachable as var.<name>, e.g. adhesion_fee = var.adhesion.
func NewEvalContextWithVars(variables map[string]string) *hcl.EvalContext {
	varMap := make(map[string]cty.Value, len(variables))
	for k, v := range variables {
		varMap[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(varMap),
		},
		Functions: Functions(),
	}
}
