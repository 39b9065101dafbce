package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"

	"difflin-api/internal/archive"
	"difflin-api/pkg/workflow"
)

func runCmd() *cobra.Command {
	var (
		requestsFile string
		outputFile   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a batch of customer requests through the order pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcCtx.Coordinator == nil {
				return errors.New("run requires both Postgres.DSN and an LLM config section")
			}
			if outputFile == "" {
				outputFile = filepath.Join(cfg.Archive.Dir, "results.csv")
			}
			return runBatch(cmd.Context(), requestsFile, outputFile)
		},
	}
	cmd.Flags().StringVar(&requestsFile, "requests", "etc/data/quote_requests_sample.csv", "customer requests CSV")
	cmd.Flags().StringVar(&outputFile, "output", "", "results CSV path (default <archive dir>/results.csv)")
	return cmd
}

func runBatch(ctx context.Context, requestsFile, outputFile string) error {
	requests, err := loadRequests(requestsFile)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return fmt.Errorf("no requests found in %s", requestsFile)
	}

	opening, err := svcCtx.Store.GenerateReport(ctx, requests[0].Date)
	if err != nil {
		return err
	}
	fmt.Println("=== Opening position ===")
	printReport(opening)

	type outcome struct {
		result *workflow.Result
		err    error
	}
	outcomes := make([]outcome, len(requests))

	workers := 1
	if svcCtx.WorkflowConfig != nil && svcCtx.WorkflowConfig.Concurrency > 1 {
		workers = svcCtx.WorkflowConfig.Concurrency
	}
	mr.ForEach(func(source chan<- int) {
		for i := range requests {
			source <- i
		}
	}, func(i int) {
		req := requests[i]
		text := fmt.Sprintf("%s (Date of request: %s)", req.Text, req.Date)
		result, err := svcCtx.Coordinator.ProcessRequest(ctx, text, req.Date)
		outcomes[i] = outcome{result: result, err: err}
	}, mr.WithWorkers(workers))

	writer := archive.NewWriter(cfg.Archive.Dir)
	rows := make([]archive.ResultRow, 0, len(requests))
	for i, req := range requests {
		out := outcomes[i]

		cash, err := svcCtx.Store.CashBalance(ctx, req.Date)
		if err != nil {
			return err
		}
		value, err := svcCtx.Store.InventoryValue(ctx, req.Date)
		if err != nil {
			return err
		}

		rec := &archive.RunRecord{
			RequestID:      i + 1,
			RequestDate:    req.Date,
			RequestText:    req.Text,
			CashBalance:    cash,
			InventoryValue: value,
		}
		response := ""
		if out.result != nil {
			response = out.result.Summary
			rec.Fulfilled = out.result.Fulfilled
			rec.Detail = out.result.Detail
			rec.Summary = out.result.Summary
			for _, stage := range out.result.Stages {
				rec.Stages = append(rec.Stages, archive.StageRecord{Stage: stage.Stage, Raw: stage.Raw})
			}
		}
		if out.err != nil {
			rec.ErrorMessage = out.err.Error()
			logx.Errorf("request %d failed: %v", i+1, out.err)
		}
		if path, err := writer.WriteRun(rec); err != nil {
			logx.Errorf("archive request %d: %v", i+1, err)
		} else {
			logx.Debugf("archived request %d to %s", i+1, path)
		}

		rows = append(rows, archive.ResultRow{
			RequestID:      i + 1,
			RequestDate:    req.Date,
			CashBalance:    cash,
			InventoryValue: value,
			Response:       response,
		})
		fmt.Printf("[%d/%d] %s — fulfilled=%v cash=$%.2f\n",
			i+1, len(requests), req.Date, rec.Fulfilled, cash)
	}

	if err := archive.WriteResults(outputFile, rows); err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", outputFile)

	closing, err := svcCtx.Store.GenerateReport(ctx, requests[len(requests)-1].Date)
	if err != nil {
		return err
	}
	fmt.Println("=== Closing position ===")
	printReport(closing)
	return nil
}
