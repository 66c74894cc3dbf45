package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/curvestate/calendar"
	"github.com/meenmo/curvestate/config"
	"github.com/meenmo/curvestate/curvestate"
	"github.com/meenmo/curvestate/logger"
	"github.com/meenmo/curvestate/utils"
)

type ratesInput struct {
	TaskID           string    `json:"task_id,omitempty"`
	FirstValidIndex  int       `json:"first_valid_index"`
	SpanningForwards int       `json:"spanning_forwards"`
	DiscountFactors  []float64 `json:"discount_factors,omitempty"`
	AccrualFractions []float64 `json:"accrual_fractions,omitempty"`

	// Date-based input: taus come from rate_dates (or a generated roll schedule)
	// and day_count, DFs from discount_factors or by sampling pillars.
	SettlementDate string             `json:"settlement_date,omitempty"`
	RateDates      []string           `json:"rate_dates,omitempty"`
	FreqMonths     int                `json:"freq_months,omitempty"`
	Periods        int                `json:"periods,omitempty"`
	Calendar       string             `json:"calendar,omitempty"`
	DayCount       string             `json:"day_count,omitempty"`
	Pillars        map[string]float64 `json:"pillars,omitempty"`
}

type ratesOutput struct {
	TaskID              string    `json:"task_id,omitempty"`
	FirstValidIndex     int       `json:"first_valid_index"`
	SpanningForwards    int       `json:"spanning_forwards,omitempty"`
	ForwardRates        []float64 `json:"forward_rates,omitempty"`
	CoterminalRates     []float64 `json:"coterminal_rates,omitempty"`
	CoterminalAnnuities []float64 `json:"coterminal_annuities,omitempty"`
	CMSRates            []float64 `json:"cms_rates,omitempty"`
	CMSAnnuities        []float64 `json:"cms_annuities,omitempty"`
	MaxRoundTripError   float64   `json:"max_round_trip_error"`
	Error               string    `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	parallel := flag.Bool("parallel", false, "Split forward-rate extraction across goroutines for long curves")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: curverates -input <path> [-parallel]")
		fmt.Fprintln(os.Stderr, "Compute forward, coterminal and constant-maturity swap rates from discount factors.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		exitError(fmt.Sprintf("config: %v", err))
	}
	config.SetConfig(cfg)
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: curverates -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]ratesOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in, *parallel, log)
		if err != nil {
			hadError = true
			log.Error().Err(err).Str("task_id", in.TaskID).Msg("task failed")
			outputs = append(outputs, ratesOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in ratesInput, parallel bool, log zerolog.Logger) (*ratesOutput, error) {
	ds, taus, err := resolveCurve(in)
	if err != nil {
		return nil, err
	}
	cfg := config.GetConfig()
	k := in.FirstValidIndex

	fwds := make([]float64, len(taus))
	workers := 1
	if parallel {
		workers = cfg.Workers(len(taus))
	}
	if err := curvestate.ForwardsFromDiscountRatiosParallel(k, ds, taus, fwds, workers); err != nil {
		return nil, err
	}

	cot, err := curvestate.CoterminalRates(k, ds, taus)
	if err != nil {
		return nil, err
	}

	out := &ratesOutput{
		TaskID:              in.TaskID,
		FirstValidIndex:     k,
		SpanningForwards:    in.SpanningForwards,
		ForwardRates:        fwds,
		CoterminalRates:     cot.Rates,
		CoterminalAnnuities: cot.Annuities,
	}

	if in.SpanningForwards > 0 {
		cms, err := curvestate.ConstantMaturityRates(in.SpanningForwards, k, ds, taus)
		if err != nil {
			return nil, err
		}
		out.CMSRates = cms.Rates
		out.CMSAnnuities = cms.Annuities
	}

	// JSON cannot carry NaN or Inf from a degenerate curve.
	for name, xs := range map[string][]float64{
		"forward_rates":        out.ForwardRates,
		"coterminal_rates":     out.CoterminalRates,
		"coterminal_annuities": out.CoterminalAnnuities,
		"cms_rates":            out.CMSRates,
		"cms_annuities":        out.CMSAnnuities,
	} {
		if i := firstNonFinite(xs); i >= 0 {
			return nil, fmt.Errorf("%s[%d] is not finite (degenerate curve)", name, i)
		}
	}

	out.MaxRoundTripError, err = curvestate.MaxRoundTripError(k, ds, taus, fwds)
	if err != nil {
		return nil, err
	}
	if out.MaxRoundTripError > cfg.CheckTolerance {
		log.Warn().
			Str("task_id", in.TaskID).
			Float64("max_round_trip_error", out.MaxRoundTripError).
			Float64("tolerance", cfg.CheckTolerance).
			Msg("forward rates do not reproduce discount factors")
	}

	log.Debug().
		Str("task_id", in.TaskID).
		Int("periods", len(taus)).
		Int("first_valid_index", k).
		Int("workers", workers).
		Msg("rates computed")
	return out, nil
}

// resolveCurve returns the (ds, taus) pair, either given directly or derived from dates.
func resolveCurve(in ratesInput) ([]float64, []float64, error) {
	if len(in.RateDates) == 0 && in.Periods == 0 {
		if len(in.DiscountFactors) == 0 || len(in.AccrualFractions) == 0 {
			return nil, nil, fmt.Errorf("discount_factors and accrual_fractions are required without rate_dates")
		}
		return in.DiscountFactors, in.AccrualFractions, nil
	}

	dayCount, err := utils.ParseDayCount(in.DayCount)
	if err != nil {
		return nil, nil, err
	}
	dates, err := resolveDates(in)
	if err != nil {
		return nil, nil, err
	}
	taus, err := curvestate.AccrualFractions(dates, dayCount)
	if err != nil {
		return nil, nil, err
	}

	if len(in.DiscountFactors) > 0 {
		return in.DiscountFactors, taus, nil
	}
	if len(in.Pillars) == 0 {
		return nil, nil, fmt.Errorf("discount_factors or pillars are required with rate_dates")
	}

	settlement := dates[0]
	if in.SettlementDate != "" {
		if settlement, err = utils.ParseDate(in.SettlementDate); err != nil {
			return nil, nil, fmt.Errorf("invalid settlement_date: %w", err)
		}
	}
	pillars := make(map[time.Time]float64, len(in.Pillars))
	for s, df := range in.Pillars {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pillar date: %w", err)
		}
		pillars[d] = df
	}
	src, err := curvestate.NewLogLinearDiscount(settlement, pillars, dayCount)
	if err != nil {
		return nil, nil, err
	}
	return curvestate.DiscountRatios(src, dates), taus, nil
}

// resolveDates returns rate_dates as given, or rolls settlement_date forward
// freq_months at a time for periods periods on the named calendar.
func resolveDates(in ratesInput) ([]time.Time, error) {
	if len(in.RateDates) > 0 {
		return parseDates(in.RateDates)
	}
	if in.SettlementDate == "" {
		return nil, fmt.Errorf("settlement_date is required to generate rate dates")
	}
	start, err := utils.ParseDate(in.SettlementDate)
	if err != nil {
		return nil, fmt.Errorf("invalid settlement_date: %w", err)
	}
	cal, err := calendar.Parse(in.Calendar)
	if err != nil {
		return nil, err
	}
	return curvestate.GenerateRateDates(start, in.FreqMonths, in.Periods, cal)
}

func firstNonFinite(xs []float64) int {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i
		}
	}
	return -1
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid rate date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]ratesInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []ratesInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input ratesInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []ratesInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(ratesOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
