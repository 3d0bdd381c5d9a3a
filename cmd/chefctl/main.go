package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"chef-app/internal/app"
	"chef-app/internal/infrastructure/config"
	"chef-app/internal/pkg/common"

	"github.com/spf13/cobra"
)

// cli 命令列共用狀態
type cli struct {
	configPath string
	format     string
	verbose    bool

	cfg *config.Config
	app *app.App
}

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute 執行一次命令，結束時一定釋放資源
func execute(args []string, in io.Reader, out io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)

	err := root.Execute()
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {

	rootCmd := &cobra.Command{
		Use:           "chefctl",
		Short:         "Rezepte importieren, Einkaufslisten erstellen und passende Gerichte finden",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file path (default: ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&c.format, "format", "f", formatText, "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	rootCmd.AddCommand(c.importCmd())
	rootCmd.AddCommand(c.listCmd())
	rootCmd.AddCommand(c.showCmd())
	rootCmd.AddCommand(c.shoppingCmd())
	rootCmd.AddCommand(c.cookableCmd())
	rootCmd.AddCommand(c.basicsCmd())
	rootCmd.AddCommand(c.favoriteCmd())
	rootCmd.AddCommand(c.exportCmd())

	return rootCmd
}

// load 讀取設定並建立服務
func (c *cli) load() error {
	if c.format != formatText && c.format != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", c.format)
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// 命令列只輸出到 stderr，預設只顯示警告
	level := "warn"
	if c.verbose {
		level = cfg.Log.Level
	}
	if err := common.InitLogger(level, ""); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c.app, err = app.New(ctx, cfg)
	return err
}

func (c *cli) close() error {
	common.Sync()
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
