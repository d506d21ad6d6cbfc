package agent

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/etnz/finance"
	"github.com/etnz/finance/docs"
	"github.com/etnz/finance/renderer"
)

// Books gives read access to the user's finance document.
type Books interface {
	Snapshot() finance.Document
}

func systemInstruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: systemInstruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user manages a personal budget: expenses, an available balance and saving goals.
			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			You never change the user's data, explain which fin command would do it instead.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns the expert that reads the user's books.
func NewAdvisor(books Books, currency, model string) *Expert {
	lib := AdvisorFunctions(books, currency)
	return &Expert{
		Name: "Advisor",
		Description: `This is the budget Advisor. It reads the user's expenses, available balance and saving goals,
		and knows how progress toward goals is computed. Ask the Advisor about any figure of the user's budget.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: systemInstruction(`
				You are a budget advisor in charge of the user's personal finance document.
				Use the available tools to read the dashboard, the expenses, the saving goals and the user manual.
				The available balance is shared by every goal: a goal's available money is its own savings plus the balance.
				Answer with figures taken from the tools, never guess them.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// NewShopper returns the expert that searches the web for prices.
func NewShopper(model string) *Expert {
	return &Expert{
		Name: "Shopper",
		Description: `This is an expert shopper, aware of current prices and deals.
		Ask the Shopper whenever you need to know what something costs, to size a saving goal.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: systemInstruction(`
			You are an expert shopper. You leverage Google Search to find current prices
			of products and services, and you quote your sources.
			`),
		},
	}
}

func noArgs() *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
}

func markdownResponse(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

// AdvisorFunctions returns the read-only tools over books.
func AdvisorFunctions(books Books, currency string) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Summary",
				Description: "Summary returns the dashboard: balance, totals, recent expenses, top categories and the least funded goals.",
				Parameters:  noArgs(),
				Response:    markdownResponse("A markdown dashboard."),
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.RenderSummary(finance.NewSummary(books.Snapshot()), currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Expenses",
				Description: "Expenses lists the expenses, most recent first, with totals per category.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {
							Type:        genai.TypeString,
							Description: "Only list the expenses of this category. All expenses when empty. Known categories: " + categoryList() + ".",
						},
					},
				},
				Response: markdownResponse("A markdown table of expenses."),
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				category, err := stringArg(args, "category", false)
				if err != nil {
					return "", err
				}
				return renderer.RenderExpenses(books.Snapshot().Expenses, category, currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Goals",
				Description: "Goals lists the saving goals, least funded first, with their progress.",
				Parameters:  noArgs(),
				Response:    markdownResponse("A markdown table of saving goals."),
			},
			Func: func(context.Context, map[string]any) (string, error) {
				doc := books.Snapshot()
				return renderer.RenderGoals(doc.SavingGoals, doc.Budget, currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "GoalStatus",
				Description: "GoalStatus returns the exact figures of one saving goal as JSON.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"goal": {Type: genai.TypeString, Description: "The id or the name of the goal."},
					},
					Required: []string{"goal"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The goal with totalAvailable, progress, remaining and fullyFunded.",
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				ref, err := stringArg(args, "goal", true)
				if err != nil {
					return "", err
				}
				doc := books.Snapshot()
				g, err := doc.LookupSavingGoal(ref)
				if err != nil {
					return "", err
				}
				data, err := json.Marshal(finance.GoalReport{SavingGoal: g, GoalStatus: g.Status(doc.Budget)})
				return string(data), err
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Manual",
				Description: "Manual returns a topic of the fin user manual, '*' for all of them.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {Type: genai.TypeString, Description: "One of: " + topicList() + "."},
					},
					Required: []string{"topic"},
				},
				Response: markdownResponse("The markdown content of the topic."),
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				topic, err := stringArg(args, "topic", true)
				if err != nil {
					return "", err
				}
				return docs.GetTopic(topic)
			},
		},
	}
}

func categoryList() string {
	var names []string
	for _, c := range finance.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func topicList() string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return "*"
	}
	return strings.Join(append(topics, "*"), ", ")
}
