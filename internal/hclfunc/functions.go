package hclfunc

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EnvFunc returns the value of an environment variable, or "" when unset.
//
//	adhesion_fee = env("QUOTER_ADHESION_FEE")
func EnvFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "varname", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(os.Getenv(args[0].AsString())), nil
		},
	})
}

// LowerFunc lowercases a string.
func LowerFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "str", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(strings.ToLower(args[0].AsString())), nil
		},
	})
}

// UpperFunc uppercases a string.
func UpperFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "str", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(strings.ToUpper(args[0].AsString())), nil
		},
	})
}

// PercentOffFunc applies a percentage discount to a price and returns the
// result as a decimal string, so the value never passes through a float.
//
//	annual_price = percent_off("250", 20)  // "200"
func PercentOffFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "price", Type: cty.String},
			{Name: "percent", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			price, err := decimal.NewFromString(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgErrorf(0, "invalid price %q", args[0].AsString())
			}
			pct, err := decimal.NewFromString(args[1].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgErrorf(1, "invalid percent %q", args[1].AsString())
			}
			if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
				return cty.NilVal, function.NewArgError(1, fmt.Errorf("percent must be between 0 and 100"))
			}

			factor := decimal.NewFromInt(100).Sub(pct).Div(decimal.NewFromInt(100))
			return cty.StringVal(price.Mul(factor).String()), nil
		},
	})
}

// Functions returns every function available in price list files:
//   - env: read an environment variable
//   - lower / upper: change string case
//   - percent_off: discount a price by a percentage
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"env":         EnvFunc(),
		"lower":       LowerFunc(),
		"upper":       UpperFunc(),
		"percent_off": PercentOffFunc(),
	}
}
