package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ads-report-api/internal/bootstrap"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-report-api/pkg/render"
)

// ReporterFactory monta o serviço de relatórios usado pelos comandos
type ReporterFactory func() (reporting.Reporter, error)

func Execute() error {
	return newRootCmd(wireReporter).Execute()
}

func wireReporter() (reporting.Reporter, error) {
	bootstrap.ConfigureLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}

	return bootstrap.NewPipeline(cfg, nil).Reporter, nil
}

func newRootCmd(factory ReporterFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Gera os relatórios de anúncios em CSV",
		Long:          "report consulta a API agregadora e gera, em CSV, os mesmos relatórios servidos pela API web: geral, por plataforma e os respectivos resumos.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newGeneralCmd(factory),
		newPlatformCmd(factory),
	)

	return rootCmd
}

func newGeneralCmd(factory ReporterFactory) *cobra.Command {
	var summary bool
	var output string

	cmd := &cobra.Command{
		Use:   "geral",
		Short: "Relatório de todas as plataformas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := factory()
			if err != nil {
				return err
			}

			build := service.GeneralDetail
			if summary {
				build = service.GeneralSummary
			}

			return writeReport(cmd, output, build)
		},
	}

	cmd.Flags().BoolVar(&summary, "resumo", false, "uma linha por plataforma")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída (padrão: stdout)")

	return cmd
}

func newPlatformCmd(factory ReporterFactory) *cobra.Command {
	var summary bool
	var output string

	cmd := &cobra.Command{
		Use:   "plataforma <nome>",
		Short: "Relatório de uma plataforma",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := factory()
			if err != nil {
				return err
			}

			platform := args[0]
			build := service.PlatformDetail
			if summary {
				build = service.PlatformSummary
			}

			return writeReport(cmd, output, func(ctx context.Context) (*domain.Table, error) {
				return build(ctx, platform)
			})
		},
	}

	cmd.Flags().BoolVar(&summary, "resumo", false, "uma linha por conta")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída (padrão: stdout)")

	return cmd
}

func writeReport(cmd *cobra.Command, output string, build func(ctx context.Context) (*domain.Table, error)) error {
	table, err := build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render.CSV(w, table); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if output != "" {
		_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%d linhas gravadas em %s\n", table.Len(), output)
		return err
	}
	return nil
}
