package agent

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/etnz/finance"
)

type fakeBooks finance.Document

func (b fakeBooks) Snapshot() finance.Document { return finance.Document(b).Clone() }

func sampleBooks() fakeBooks {
	doc := finance.DefaultDocument()
	doc.Budget = finance.A(60)
	doc.Expenses = []finance.Expense{
		{ID: "e1", Name: "Groceries", Amount: finance.A(40), Category: finance.Food, Date: finance.NewDate(2025, 6, 2)},
		{ID: "e2", Name: "Metro pass", Amount: finance.A(75), Category: finance.Transport, Date: finance.NewDate(2025, 6, 1)},
	}
	doc.SavingGoals = []finance.SavingGoal{
		{ID: "g1", Name: "Bike", TargetAmount: finance.A(100), CurrentAmount: finance.A(40)},
		{ID: "g2", Name: "Laptop", TargetAmount: finance.A(1200)},
	}
	return fakeBooks(doc)
}

func call(t *testing.T, lib Library, name string, args map[string]any) (output string, errMsg string) {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "call-1", Name: name, Args: args})
	if resp.ID != "call-1" || resp.Name != name {
		t.Errorf("response of %s is addressed to %s/%s", name, resp.ID, resp.Name)
	}
	out, _ := resp.Response["output"].(string)
	msg, _ := resp.Response["error"].(string)
	return out, msg
}

func TestLibrary(t *testing.T) {
	echo := &Func{
		Decl: &genai.FunctionDeclaration{Name: "Echo"},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			return stringArg(args, "text", true)
		},
	}
	lib := NewLibrary([]Function{echo})

	if out, msg := call(t, lib, "Echo", map[string]any{"text": "hello"}); out != "hello" || msg != "" {
		t.Errorf("Echo(hello) = %q, %q", out, msg)
	}
	if _, msg := call(t, lib, "Echo", map[string]any{}); !strings.Contains(msg, `"text" is required`) {
		t.Errorf("Echo() error = %q", msg)
	}
	if _, msg := call(t, lib, "Echo", map[string]any{"text": 3.0}); !strings.Contains(msg, "float64") {
		t.Errorf("Echo(3) error = %q", msg)
	}
	if _, msg := call(t, lib, "Shout", nil); msg != "unknown function Shout" {
		t.Errorf("Shout() error = %q", msg)
	}

	decls := NewDeclaration([]Function{echo})
	if len(decls) != 1 || decls[0].Name != "Echo" {
		t.Errorf("NewDeclaration() = %v", decls)
	}
}

func TestExpert_CallRequiresQuestion(t *testing.T) {
	e := NewShopper("test-model")
	resp := e.Call(context.Background(), "id", map[string]any{})
	if msg, _ := resp.Response["error"].(string); !strings.Contains(msg, "question") {
		t.Errorf("Call() without question = %v", resp.Response)
	}
	d := e.Declaration()
	if d.Name != "Shopper" || d.Parameters.Required[0] != "question" {
		t.Errorf("Declaration() = %+v", d)
	}
}

func TestAdvisorFunctions(t *testing.T) {
	lib := NewLibrary(AdvisorFunctions(sampleBooks(), "EUR"))

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr string
	}{
		{name: "Summary", want: "# Dashboard"},
		{name: "Expenses", args: map[string]any{"category": "food"}, want: "# Expenses in Food"},
		{name: "Expenses", args: map[string]any{"category": 1.0}, wantErr: "not a string"},
		{name: "Goals", want: "| Bike ✓ |"},
		{name: "GoalStatus", args: map[string]any{"goal": "bike"}, want: `"fullyFunded":true`},
		{name: "GoalStatus", args: map[string]any{"goal": "g2"}, want: `"progress":5`},
		{name: "GoalStatus", args: map[string]any{"goal": "boat"}, wantErr: finance.ErrGoalNotFound.Error()},
		{name: "Manual", args: map[string]any{"topic": "dates"}, want: "# Dates"},
		{name: "Manual", args: map[string]any{"topic": "stocks"}, wantErr: "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, msg := call(t, lib, tt.name, tt.args)
			if tt.wantErr != "" {
				if !strings.Contains(msg, tt.wantErr) {
					t.Errorf("%s(%v) error = %q, want %q", tt.name, tt.args, msg, tt.wantErr)
				}
				return
			}
			if msg != "" {
				t.Fatalf("%s(%v) failed: %s", tt.name, tt.args, msg)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s(%v) = %q, want it to contain %q", tt.name, tt.args, out, tt.want)
			}
		})
	}
}

func TestAdvisorFunctions_Declarations(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range NewDeclaration(AdvisorFunctions(sampleBooks(), "USD")) {
		if d.Name == "" || d.Description == "" || d.Parameters == nil {
			t.Errorf("incomplete declaration %+v", d)
		}
		if seen[d.Name] {
			t.Errorf("function %s is declared twice", d.Name)
		}
		seen[d.Name] = true
	}
}

func TestNew_WiresExperts(t *testing.T) {
	advisor := NewAdvisor(sampleBooks(), "USD", "test-model")
	a := New(&strings.Builder{}, strings.NewReader(""), "test-model", nil, advisor, NewShopper("test-model"))

	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	if len(decls) != 2 || decls[0].Name != "Advisor" || decls[1].Name != "Shopper" {
		t.Errorf("facilitator tools = %v", decls)
	}
	if advisor.log == nil {
		t.Error("experts should share the agent logger")
	}
	// the facilitator relays questions to the experts through its library.
	resp := a.Facilitator.Library(context.Background(), &genai.FunctionCall{Name: "Advisor", Args: map[string]any{}})
	if msg, _ := resp.Response["error"].(string); msg == "" {
		t.Error("asking an expert without a question should fail")
	}
}

func TestAnswerText(t *testing.T) {
	content := &genai.Content{Parts: []*genai.Part{{Text: "Your balance "}, {Text: "is $60.00."}}}
	if got := answerText(content); got != "Your balance is $60.00." {
		t.Errorf("answerText() = %q", got)
	}
}

