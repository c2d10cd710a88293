package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/domain/model"
)

func convertCmd() *cobra.Command {
	var (
		from, to                           string
		value                              float64
		deviation, volatility, uncertainty float64
		index, age                         uint
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one rating into another system",
		Long: `Convert one rating into another system.

Supported conversions are elo->ingo, ingo->elo and elo->dwz. Any other
pair between different systems fails; formulas are never chained.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := model.ParseSystem(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			dst, err := model.ParseSystem(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			in := model.Rating{System: src, Rating: value}
			flags := cmd.Flags()
			if flags.Changed("deviation") {
				in.Deviation = &deviation
			}
			if flags.Changed("volatility") {
				in.Volatility = &volatility
			}
			if flags.Changed("uncertainty") {
				in.Uncertainty = &uncertainty
			}
			if flags.Changed("index") {
				in.Index = &index
			}
			if flags.Changed("age") {
				in.Age = &age
			}

			out, err := service.New().Convert(cmd.Context(), in, dst)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "Source rating system")
	f.StringVar(&to, "to", "", "Target rating system")
	f.Float64Var(&value, "rating", 0, "Rating value")
	f.Float64Var(&deviation, "deviation", 0, "Rating deviation (glicko, glicko2)")
	f.Float64Var(&volatility, "volatility", 0, "Volatility (glicko2)")
	f.Float64Var(&uncertainty, "uncertainty", 0, "Uncertainty (trueskill)")
	f.UintVar(&index, "index", 0, "Evaluation index (dwz)")
	f.UintVar(&age, "age", 0, "Player age (dwz, ingo)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults [system]",
		Short: "Print the default rating of one system or of all systems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.New()
			if len(args) == 1 {
				sys, err := model.ParseSystem(args[0])
				if err != nil {
					return err
				}
				r, err := svc.Default(cmd.Context(), sys)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			}

			all := make(map[model.System]model.Rating)
			for _, info := range svc.Systems(cmd.Context()) {
				if !info.HasDefault {
					continue
				}
				r, err := svc.Default(cmd.Context(), info.Name)
				if err != nil {
					return err
				}
				all[info.Name] = r
			}
			return printJSON(cmd.OutOrStdout(), all)
		},
	}
}

type systemsOutput struct {
	Systems     []service.SystemInfo `json:"systems"`
	Conversions []string             `json:"conversions"`
}

func systemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List rating systems and supported conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.New()
			out := systemsOutput{Systems: svc.Systems(cmd.Context())}
			for _, p := range svc.Conversions(cmd.Context()) {
				out.Conversions = append(out.Conversions, p.String())
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
