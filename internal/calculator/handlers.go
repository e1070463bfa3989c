package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-chi-baseconv/internal/baseconv"
	"go-chi-baseconv/internal/handlers"
	"go-chi-baseconv/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ---------------------------------------------------------------------------
// Handlers: add / subtract
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, baseconv.OpAdd)
}

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, baseconv.OpSubtract)
}

// handleBinaryOp validates both tokens against the requested base, converts
// them to decimal, applies op and renders the result back in the base.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op baseconv.Operation) {
	opName := string(op)
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	conv, err := baseconv.New(baseconv.Base(req.Base))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "unsupported base", err, http.StatusBadRequest, w, zap.Int("base", req.Base))
		return
	}

	span.SetAttributes(
		attribute.Int("calculator.base", req.Base),
		attribute.Int("calculator.operand.a", int(req.A)),
		attribute.Int("calculator.operand.b", int(req.B)),
	)

	start := time.Now()
	calc, err := conv.Calculate(req.A, req.B, op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		recordInvalid(ctx, span, logger, opName, req.Base, err, w)
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("base", conv.Base().Name()),
	)
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, int64(calc.Decimal), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Int("result_decimal", int(calc.Decimal)),
		attribute.String("result", calc.Result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", calc.Result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Int("base", req.Base),
		zap.Int32("a", req.A),
		zap.Int32("b", req.B),
		zap.Int32("a_decimal", calc.ADecimal),
		zap.Int32("b_decimal", calc.BDecimal),
		zap.Int32("result_decimal", calc.Decimal),
		zap.String("result", calc.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation:     opName,
		Base:          req.Base,
		A:             calc.A,
		B:             calc.B,
		ADecimal:      calc.ADecimal,
		BDecimal:      calc.BDecimal,
		ResultDecimal: calc.Decimal,
		Result:        calc.Result,
	})
}

// recordInvalid reports a rejected operand. Digit failures collapse to the
// single "invalid data" message; anything else is passed through.
func recordInvalid(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, base int, err error, w http.ResponseWriter) {
	msg := err.Error()
	if errors.Is(err, baseconv.ErrInvalidDigits) {
		msg = baseconv.ErrInvalidDigits.Error()
		invalidCounter.Add(ctx, 1, metric.WithAttributes(attribute.Int("base", base)))
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, http.StatusBadRequest, w, zap.Int("base", base))
}

// ---------------------------------------------------------------------------
// Handlers: single conversions
// ---------------------------------------------------------------------------

// Convert handles POST /calculator/convert: foreign-digit token to decimal.
func Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.convert")
	defer span.End()

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "convert", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	conv, err := baseconv.New(baseconv.Base(req.Base))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "convert", "unsupported base", err, http.StatusBadRequest, w, zap.Int("base", req.Base))
		return
	}

	if !conv.IsValidDigits(req.Token) {
		err := fmt.Errorf("%w: token=%d for %s", baseconv.ErrInvalidDigits, req.Token, conv.Base())
		recordInvalid(ctx, span, logger, "convert", req.Base, err, w)
		return
	}

	decimal := conv.FromForeignDigits(req.Token)
	span.SetAttributes(
		attribute.Int("calculator.base", req.Base),
		attribute.Int("calculator.token", int(req.Token)),
		attribute.Int("calculator.decimal", int(decimal)),
	)
	span.SetStatus(codes.Ok, "")
	opsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "convert")))

	logger.Debug("token converted",
		zap.Int("base", req.Base),
		zap.Int32("token", req.Token),
		zap.Int32("decimal", decimal),
	)

	handlers.WriteJSON(w, http.StatusOK, ConvertResponse{
		Base:    req.Base,
		Token:   req.Token,
		Decimal: decimal,
	})
}

// Render handles POST /calculator/render: decimal value to base digits.
func Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.render")
	defer span.End()

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "render", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	conv, err := baseconv.New(baseconv.Base(req.Base))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "render", "unsupported base", err, http.StatusBadRequest, w, zap.Int("base", req.Base))
		return
	}

	digits := conv.ToForeignDigits(req.Value)
	span.SetAttributes(
		attribute.Int("calculator.base", req.Base),
		attribute.Int("calculator.value", int(req.Value)),
		attribute.String("calculator.digits", digits),
	)
	span.SetStatus(codes.Ok, "")
	opsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "render")))

	logger.Debug("value rendered",
		zap.Int("base", req.Base),
		zap.Int32("value", req.Value),
		zap.String("digits", digits),
	)

	handlers.WriteJSON(w, http.StatusOK, RenderResponse{
		Base:   req.Base,
		Value:  req.Value,
		Digits: digits,
	})
}

// Bases handles GET /calculator/bases and lists the bases in menu order.
func Bases(w http.ResponseWriter, r *http.Request) {
	out := make([]BaseInfo, 0, len(baseconv.Offered))
	for i, b := range baseconv.Offered {
		out = append(out, BaseInfo{
			Menu:     i + 1,
			Name:     b.Name(),
			Base:     int(b),
			Alphabet: b.Alphabet(),
		})
	}
	handlers.WriteJSON(w, http.StatusOK, out)
}

// ---------------------------------------------------------------------------
// Handler: chained operations (nested spans)
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It applies a sequence of add and
// subtract steps to a running total, all tokens read in the same base, and
// creates a child span for every step.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	conv, err := baseconv.New(baseconv.Base(req.Base))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "unsupported base", err, http.StatusBadRequest, w, zap.Int("base", req.Base))
		return
	}

	if !conv.IsValidDigits(req.Initial) {
		err := fmt.Errorf("%w: initial=%d for %s", baseconv.ErrInvalidDigits, req.Initial, conv.Base())
		recordInvalid(ctx, span, logger, "chain", req.Base, err, w)
		return
	}

	span.SetAttributes(
		attribute.Int("chain.base", req.Base),
		attribute.Int("chain.initial", int(req.Initial)),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Int("base", req.Base),
		zap.Int32("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := conv.FromForeignDigits(req.Initial)
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Int("chain.step.input", int(running)),
				attribute.Int("chain.step.value", int(step.Value)),
			),
		)

		stepStart := time.Now()
		prev := running

		op, err := baseconv.ParseOperation(step.Op)
		if err == nil && !conv.IsValidDigits(step.Value) {
			err = fmt.Errorf("%w: step %d value=%d for %s", baseconv.ErrInvalidDigits, i, step.Value, conv.Base())
		}
		if err == nil {
			running = op.Apply(running, conv.FromForeignDigits(step.Value))
		}

		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			span.SetStatus(codes.Error, fmt.Sprintf("failed at step %d", i))
			recordInvalid(ctx, span, logger, step.Op, req.Base, fmt.Errorf("step %d: %w", i, err), w)
			return
		}

		digits := conv.ToForeignDigits(running)

		attrs := metric.WithAttributes(
			attribute.String("operation", step.Op),
			attribute.String("base", conv.Base().Name()),
		)
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Int("input", int(prev)),
			attribute.Int("result", int(running)),
		))
		stepSpan.SetAttributes(attribute.String("chain.step.result", digits))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Int32("input", prev),
			zap.Int32("value", step.Value),
			zap.Int32("result_decimal", running),
			zap.String("result", digits),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:            step.Op,
			Value:         step.Value,
			ResultDecimal: running,
			Result:        digits,
		})
	}

	final := conv.ToForeignDigits(running)
	resultGauge.Record(ctx, int64(running), metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Int("final_result", int(running)),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.String("chain.result", final))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Int("base", req.Base),
		zap.Int32("initial", req.Initial),
		zap.String("result", final),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Base:          req.Base,
		Initial:       req.Initial,
		Steps:         results,
		ResultDecimal: running,
		Result:        final,
	})
}
