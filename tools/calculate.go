package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
)

// allowed restricts calculate input to arithmetic grammar before the
// expression compiler ever sees it. Identifiers and function calls are
// rejected outright, so the evaluator cannot be steered outside numeric
// operators.
const allowedExpressionChars = "0123456789+-*/%^(). \t"

type Calculate struct{}

type calculateArgs struct {
	Expression string `json:"expression"`
}

type calculateResult struct {
	Success    bool   `json:"success"`
	Expression string `json:"expression"`
	Result     any    `json:"result"`
}

func NewCalculate() *Calculate {
	return &Calculate{}
}

func (c *Calculate) Name() string {
	return "calculate"
}

func (c *Calculate) Description() string {
	return "Evaluates a mathematical expression and returns the result. Supports basic arithmetic operations: addition (+), subtraction (-), multiplication (*), division (/), and parentheses."
}

func (c *Calculate) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"expression": {
				"type": "string",
				"description": "The mathematical expression to evaluate (e.g., '25 * 4', '(100 + 50) / 2')"
			}
		},
		"required": ["expression"]
	}`)
}

func (c *Calculate) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params calculateArgs
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	expression := strings.TrimSpace(params.Expression)
	if expression == "" {
		return "", fmt.Errorf("expression is empty")
	}

	for _, r := range expression {
		if !strings.ContainsRune(allowedExpressionChars, r) {
			return "", fmt.Errorf("invalid expression %q: character %q is not part of arithmetic grammar", expression, r)
		}
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	value, err := expr.Run(program, nil)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate %q: %w", expression, err)
	}

	// Float division by zero evaluates to Inf (0/0 to NaN) rather than
	// erroring, and neither survives json.Marshal.
	switch v := value.(type) {
	case int, int64, uint64:
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return "", fmt.Errorf("failed to evaluate %q: division by zero", expression)
		}
	default:
		return "", fmt.Errorf("expression %q did not produce a numeric result", expression)
	}

	output, err := json.Marshal(calculateResult{
		Success:    true,
		Expression: params.Expression,
		Result:     value,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

func init() {
	Register(NewCalculate())
}
