package agent

import (
	"context"
	"fmt"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/docs"
	"github.com/etnz/capsim/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user is exploring weekly capital strategies: either letting a pot compound freely,
			or capping it and harvesting the excess into savings and spending money.

			Learn about the experts' skills from the Tools and ask them questions. They are at
			your service and 100% dedicated to you, they keep context of your previous questions.

			The Simulator runs exact simulations; prefer its numbers over your own arithmetic.
			Devise a plan of questions and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert that grounds strategy questions with
// Google Search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher on savings and investment strategies.
		Ask the Researcher whenever you need recent or grounding information about
		returns, interest rates or withdrawal strategies.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance and investment strategies. You can search
			and find anything related to markets, rates, savings products and withdrawal
			strategies. You leverage Google Search to ground your assertions in solid truth.
		`}}},
		},
	}
}

// NewSimulator returns the expert that can actually run simulations.
func NewSimulator() *Expert {
	lib := []Function{RunGrowth, RunHarvest}

	return &Expert{
		Name: "Simulator",
		Description: `This is the Simulator. It runs exact week-by-week capital simulations:
		pure compounding (growth) or compounding up to a cap with the excess harvested
		(harvest). Ask it whenever the user wants numbers.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You run capital simulations with the available tools and report their outcome.
			All arithmetic is exact; never recompute or round the results yourself.

			Below is the documentation of the simulation parameters:

		` + must(docs.Topic("parameters"))}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// paramSchema describes the shared simulation inputs.
func paramSchema(withCap bool) *genai.Schema {
	properties := map[string]*genai.Schema{
		"pot": {
			Type:        genai.TypeString,
			Description: "The starting capital as a decimal string, e.g. \"220\".",
		},
		"rate": {
			Type:        genai.TypeString,
			Description: "The weekly fractional return as a decimal string, e.g. \"0.25\" for 25% a week.",
		},
		"weeks": {
			Type:        genai.TypeInteger,
			Description: "How many weeks to simulate, e.g. 52 for a year.",
		},
		"currency": {
			Type:        genai.TypeString,
			Description: "ISO currency code for all amounts. Defaults to EUR.",
		},
		"start": {
			Type:        genai.TypeString,
			Description: "Start date as YYYY-MM-DD. Defaults to today. The run starts on the Monday of that week.",
		},
	}
	required := []string{"pot", "rate", "weeks"}
	if withCap {
		properties["cap"] = &genai.Schema{
			Type:        genai.TypeString,
			Description: "The pot ceiling as a decimal string. Must be greater than the starting pot.",
		}
		required = append(required, "cap")
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}

// RunGrowth simulates pure compounding.
var RunGrowth = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "run_growth",
		Description: `Simulate pure weekly compounding: every week the pot earns the rate and the
		profit is reinvested in full. Returns a markdown summary of the run.`,
		Parameters: paramSchema(false),
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown summary of the simulated run.",
		},
	},
	Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return runSimulation(capsim.Growth, id, "run_growth", args)
	},
}

// RunHarvest simulates compounding up to a cap with the excess withdrawn.
var RunHarvest = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "run_harvest",
		Description: `Simulate the harvest strategy: the pot compounds until it reaches the cap,
		then stays pinned there while each week's excess profit is withdrawn and split
		half and half between a vault and spending money. Returns a markdown summary.`,
		Parameters: paramSchema(true),
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown summary of the simulated run.",
		},
	},
	Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return runSimulation(capsim.Harvest, id, "run_harvest", args)
	},
}

func runSimulation(s capsim.Strategy, id, name string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{},
	}

	p, err := paramsFromArgs(s, args)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	res, err := capsim.NewEngine(s).Run(p)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}

	fresp.Response["output"] = renderer.SummaryMarkdown(res)
	return fresp
}

func paramsFromArgs(s capsim.Strategy, args map[string]any) (capsim.Parameters, error) {
	currency := "EUR"
	if c, ok := args["currency"].(string); ok && c != "" {
		currency = c
	}

	pot, err := stringArg(args, "pot")
	if err != nil {
		return capsim.Parameters{}, err
	}
	p := capsim.Parameters{}
	if p.InitialPot, err = capsim.ParseMoney(pot, currency); err != nil {
		return capsim.Parameters{}, err
	}

	rate, err := stringArg(args, "rate")
	if err != nil {
		return capsim.Parameters{}, err
	}
	if p.WeeklyRate, err = capsim.ParseRate(rate); err != nil {
		return capsim.Parameters{}, err
	}

	// JSON numbers arrive as float64.
	weeks, ok := args["weeks"].(float64)
	if !ok {
		return capsim.Parameters{}, fmt.Errorf("argument 'weeks' is not a number but %T", args["weeks"])
	}
	p.TotalWeeks = int(weeks)

	if start, ok := args["start"].(string); ok && start != "" {
		d, err := capsim.ParseDate(start)
		if err != nil {
			return capsim.Parameters{}, err
		}
		p.Start = d.StartMonday()
	}

	if s == capsim.Harvest {
		ceiling, err := stringArg(args, "cap")
		if err != nil {
			return capsim.Parameters{}, err
		}
		if p.Cap, err = capsim.ParseMoney(ceiling, currency); err != nil {
			return capsim.Parameters{}, err
		}
	}
	return p, nil
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, args[name])
	}
	return v, nil
}
