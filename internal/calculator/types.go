package calculator

// CalcRequest is the JSON body for POST /calculator/add and /subtract.
// A and B are foreign-digit tokens: with base 2, 110 means six.
type CalcRequest struct {
	Base int   `json:"base"`
	A    int32 `json:"a"`
	B    int32 `json:"b"`
}

// CalcResponse is the JSON response for add and subtract.
type CalcResponse struct {
	Operation     string `json:"operation"`
	Base          int    `json:"base"`
	A             int32  `json:"a"`
	B             int32  `json:"b"`
	ADecimal      int32  `json:"a_decimal"`
	BDecimal      int32  `json:"b_decimal"`
	ResultDecimal int32  `json:"result_decimal"`
	Result        string `json:"result"` // digits in Base
}

// ConvertRequest is the JSON body for POST /calculator/convert.
type ConvertRequest struct {
	Base  int   `json:"base"`
	Token int32 `json:"token"`
}

// ConvertResponse is the JSON response for POST /calculator/convert.
type ConvertResponse struct {
	Base    int   `json:"base"`
	Token   int32 `json:"token"`
	Decimal int32 `json:"decimal"`
}

// RenderRequest is the JSON body for POST /calculator/render.
type RenderRequest struct {
	Base  int   `json:"base"`
	Value int32 `json:"value"`
}

// RenderResponse is the JSON response for POST /calculator/render.
type RenderResponse struct {
	Base   int    `json:"base"`
	Value  int32  `json:"value"`
	Digits string `json:"digits"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string `json:"op"`    // "add" or "subtract"
	Value int32  `json:"value"` // foreign-digit token applied to the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Base    int         `json:"base"`
	Initial int32       `json:"initial"` // foreign-digit token
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Base          int           `json:"base"`
	Initial       int32         `json:"initial"`
	Steps         []ChainResult `json:"steps"`
	ResultDecimal int32         `json:"result_decimal"`
	Result        string        `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op            string `json:"op"`
	Value         int32  `json:"value"`
	ResultDecimal int32  `json:"result_decimal"`
	Result        string `json:"result"`
}

// BaseInfo describes one base offered by the calculator.
type BaseInfo struct {
	Menu     int    `json:"menu"`
	Name     string `json:"name"`
	Base     int    `json:"base"`
	Alphabet string `json:"alphabet"`
}
