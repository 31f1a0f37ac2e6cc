package model

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/internal/stats"
	"statshell/pkg/stattypes"
)

// IvregressCommand fits a two-stage least squares model. The endogenous
// regressors and their instruments are written in parentheses:
//
//	ivregress 2sls depvar exogvars (endogvars = instruments)
type IvregressCommand struct{}

// Name returns the command name "ivregress" for registration and lookup.
func (c *IvregressCommand) Name() string { return "ivregress" }

// Aliases returns the abbreviations for the ivregress command.
func (c *IvregressCommand) Aliases() []string { return []string{"ivreg"} }

// Description returns a brief description of what the ivregress command does.
func (c *IvregressCommand) Description() string {
	return "Instrumental-variables regression (two-stage least squares)"
}

// Usage returns the syntax for the ivregress command.
func (c *IvregressCommand) Usage() string {
	return "ivregress [2sls] depvar [exogvars] (endogvars = instruments)"
}

// HelpInfo returns structured help information for the ivregress command.
func (c *IvregressCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "ivregress 2sls invest kstock (mvalue = lag_mvalue)", Description: "mvalue instrumented by its lag"},
		},
		Notes: []string{
			"At least as many instruments as endogenous regressors are required",
		},
	}
}

// Execute parses the instrument specification, fits, and stores the result.
func (c *IvregressCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	spec, depvar, endog, exog, err := parseIVClause(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	result, err := stats.FitIV(spec)
	if err != nil {
		return "", err
	}
	name := storeResult(ctx, result, depvar, append(endog, exog...), args.Options)
	return fmt.Sprintf("%s\n(estimate stored as %s)", result.Summary(), name), nil
}

// parseIVClause splits "[2sls] depvar exog... (endog... = instr...)" into a
// fit specification.
func parseIVClause(ds *dataset.Dataset, clause string) (stats.IVSpec, string, []string, []string, error) {
	var spec stats.IVSpec
	clause = strings.TrimSpace(clause)

	open := strings.Index(clause, "(")
	closing := strings.LastIndex(clause, ")")
	if open < 0 || closing < open {
		return spec, "", nil, nil, fmt.Errorf("expected an (endogvars = instruments) group")
	}
	inner := clause[open+1 : closing]
	outer := strings.Fields(clause[:open] + " " + clause[closing+1:])

	eq := strings.Index(inner, "=")
	if eq < 0 {
		return spec, "", nil, nil, fmt.Errorf("expected = between endogenous variables and instruments")
	}
	endog := strings.Fields(inner[:eq])
	instr := strings.Fields(inner[eq+1:])
	if len(endog) == 0 || len(instr) == 0 {
		return spec, "", nil, nil, fmt.Errorf("the instrument group needs variables on both sides of =")
	}

	if len(outer) > 0 && strings.EqualFold(outer[0], "2sls") {
		outer = outer[1:]
	}
	if len(outer) == 0 {
		return spec, "", nil, nil, fmt.Errorf("expected a dependent variable")
	}
	depvar, exog := outer[0], outer[1:]

	for _, name := range append(append(append([]string{depvar}, exog...), endog...), instr...) {
		if !ds.HasColumn(name) {
			return spec, "", nil, nil, fmt.Errorf("variable %s not found", name)
		}
	}

	y, err := ds.Float(depvar)
	if err != nil {
		return spec, "", nil, nil, err
	}
	endogCols, err := numericColumns(ds, endog)
	if err != nil {
		return spec, "", nil, nil, err
	}
	exogCols, err := numericColumns(ds, exog)
	if err != nil {
		return spec, "", nil, nil, err
	}
	instrCols, err := numericColumns(ds, instr)
	if err != nil {
		return spec, "", nil, nil, err
	}

	spec = stats.IVSpec{
		DepVar:     depvar,
		Y:          y,
		EndogNames: endog,
		Endog:      endogCols,
		ExogNames:  exog,
		Exog:       exogCols,
		InstrNames: instr,
		Instr:      instrCols,
	}
	return spec, depvar, endog, exog, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&IvregressCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register ivregress command: %v", err))
	}
}
