package components

import "sort"

// Component describes one UI component an agent can render.
type Component struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Props            map[string]string `json:"propsDefinition"`
	LoadingComponent string            `json:"loadingComponent,omitempty"`
	DataEndpoint     string            `json:"dataEndpoint,omitempty"`
}

// ToolParameter describes one argument of a context tool.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"isRequired"`
}

// Tool is a context tool the agent can call before choosing a component.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Endpoint    string          `json:"endpoint"`
	Parameters  []ToolParameter `json:"parameters"`
}

// Catalog is the published component registry.
type Catalog struct {
	Components []Component `json:"components"`
	Tools      []Tool      `json:"tools"`
}

const timeRangeHint = "You should usually request predictions over more than one time bucket. " +
	"For example if the user asks about stock predictions last month use the start and end of the month as the time range and a daily or weekly interval."

var rangeProps = map[string]string{
	"symbol":       "string which is the stock symbol",
	"companyName":  "string which is the single word company name",
	"startTimeISO": "string which is the start time of the predictions to query",
	"endTimeISO":   "string which is the end time of the predictions to query",
	"interval":     "day | week | month, which is the time interval of the predictions to query",
}

func withProps(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Default returns the catalog served to the agent.
func Default() Catalog {
	c := Catalog{
		Components: []Component{
			{
				Name: "stock-sentiment-graph",
				Description: "Displays crowd predictions for a stock symbol or index grouped by time interval, where each prediction is the sentiment of an individual. " +
					timeRangeHint +
					" If the user does not give a time range default to the prior month. When a bucket has no predictions the chart interpolates the sentiment ratios of the two surrounding buckets.",
				Props:            rangeProps,
				LoadingComponent: "chart-skeleton",
				DataEndpoint:     "/api/predictions/grouped",
			},
			{
				Name: "individual-sentiment-chart",
				Description: "Displays the predictions of one named individual for a stock symbol over a time range. " +
					timeRangeHint + " Use this component whenever a person's name is given.",
				Props: withProps(rangeProps, map[string]string{
					"username": "'Cathie Wood' | 'Jim Cramer' | 'Bill Ackman' | 'Jason Calcanis' string which is the username to filter the predictions by",
				}),
				LoadingComponent: "chart-skeleton",
				DataEndpoint:     "/api/predictions/individual",
			},
			{
				Name:        "welcome-card",
				Description: "A customizable welcome card that greets the user and displays their role.",
				Props: map[string]string{
					"userName": "string which is the name of the user",
					"role":     "string which is the role of the user (optional)",
					"age":      "string which is defined by the user, defaults to 40",
					"theme":    "light | dark (optional, defaults to 'light')",
				},
			},
			{
				Name: "prediction-list",
				Description: "Fetches and displays a list of predictions for financial assets with each asset's logo. " +
					"Only use this if the user asks for a list of predictions specifically.",
				Props: map[string]string{
					"limit": "number of predictions to fetch, at most 100 per page",
				},
				DataEndpoint: "/api/predictions",
			},
		},
		Tools: []Tool{
			{
				Name:        "sentiment-context",
				Description: "Provides sentiment aggregates for a stock symbol over a time range and interval.",
				Endpoint:    "/api/predictions/context",
				Parameters: []ToolParameter{
					{Name: "symbol", Type: "string", Description: "Stock symbol (e.g. SPY) to fetch predictions for.", Required: false},
					{Name: "start", Type: "string", Description: "Start of the range in ISO format (e.g. 2024-12-01).", Required: true},
					{Name: "end", Type: "string", Description: "End of the range in ISO format (e.g. 2024-12-30).", Required: true},
					{Name: "interval", Type: "string", Description: "Time interval (day, week, month).", Required: true},
					{Name: "direction", Type: "string", Description: "Filter predictions by direction (up, down, long, short).", Required: false},
					{Name: "aggregateType", Type: "string", Description: "One of totalPredictions, bullishPredictions, bearishPredictions, symbolSpecificPredictions.", Required: true},
				},
			},
		},
	}
	sort.Slice(c.Components, func(i, j int) bool { return c.Components[i].Name < c.Components[j].Name })
	return c
}

// Lookup returns the named component.
func (c Catalog) Lookup(name string) (Component, bool) {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return Component{}, false
}
