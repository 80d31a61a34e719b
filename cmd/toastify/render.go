package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/assets"
	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/frame"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// renderStep is the simulated frame interval used by --elapsed.
const renderStep = 16 * time.Millisecond

type renderOptions struct {
	message   string
	kind      string
	position  string
	theme     string
	autoClose time.Duration
	progress  bool
	canClose  bool
	options   string
	elapsed   time.Duration
	iconsDir  string
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one toast to HTML",
		Long: `Render a toast without a browser and print the resulting markup.

The toast runs on a simulated clock: its entry frame always runs, and
--elapsed advances the countdown so the progress indicator and auto
close can be inspected.

Examples:
  toastify render --message="Saved" --type=success
  toastify render --options='{"position":"bottom-left","theme":"dark"}'
  toastify render --auto-close=3s --elapsed=1500ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			toastOpts, err := renderToastOptions(cmd, opts)
			if err != nil {
				return err
			}

			icons := toast.DefaultIcons()
			if opts.iconsDir != "" {
				icons, err = assets.Dir(opts.iconsDir).Load(cmd.Context())
				if err != nil {
					return err
				}
			}

			doc := dom.NewDocument()
			clock := frame.NewManual()
			toast.New(toast.Host{Document: doc, Frames: clock, Icons: icons}, toastOpts...)
			clock.Frame()
			if opts.elapsed > 0 {
				clock.Run(opts.elapsed, renderStep)
			}

			fmt.Fprintln(cmd.OutOrStdout(), dom.InnerHTML(doc.Body))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.message, "message", "m", "", "Toast message (the default type shows the brand text instead)")
	f.StringVarP(&opts.kind, "type", "t", "", "Toast type: info, warning, error, success, default")
	f.StringVar(&opts.position, "position", "", "Container position, e.g. top-right")
	f.StringVar(&opts.theme, "theme", "", "Theme: light or dark")
	f.DurationVar(&opts.autoClose, "auto-close", 0, "Auto close delay, 0 disables")
	f.BoolVar(&opts.progress, "progress", true, "Show the progress indicator")
	f.BoolVar(&opts.canClose, "can-close", true, "Close the toast on click")
	f.StringVar(&opts.options, "options", "", "Toast options as a JSON object")
	f.DurationVar(&opts.elapsed, "elapsed", 0, "Simulated time to run after the entry frame")
	f.StringVar(&opts.iconsDir, "icons-dir", "", "Directory of <type>.svg icon overrides")
	return cmd
}

// renderToastOptions layers explicitly set flags over --options.
func renderToastOptions(cmd *cobra.Command, opts renderOptions) ([]toast.Option, error) {
	var out []toast.Option
	if opts.options != "" {
		parsed, err := toast.ParseOptionsJSON([]byte(opts.options))
		if err != nil {
			return nil, errors.New("T400").WithField("--options").Wrap(err)
		}
		out = append(out, parsed...)
	}

	f := cmd.Flags()
	if f.Changed("message") {
		out = append(out, toast.WithMessage(opts.message))
	}
	if f.Changed("type") {
		k, err := toast.ParseType(opts.kind)
		if err != nil {
			return nil, errors.New("T400").WithField("--type").Wrap(err)
		}
		out = append(out, toast.WithType(k))
	}
	if f.Changed("position") {
		p, err := toast.ParsePosition(opts.position)
		if err != nil {
			return nil, errors.New("T400").WithField("--position").Wrap(err)
		}
		out = append(out, toast.WithPosition(p))
	}
	if f.Changed("theme") {
		th, err := toast.ParseTheme(opts.theme)
		if err != nil {
			return nil, errors.New("T400").WithField("--theme").Wrap(err)
		}
		out = append(out, toast.WithTheme(th))
	}
	if f.Changed("auto-close") {
		out = append(out, toast.WithAutoClose(opts.autoClose))
	}
	if f.Changed("progress") {
		out = append(out, toast.WithShowProgress(opts.progress))
	}
	if f.Changed("can-close") {
		out = append(out, toast.WithCanClose(opts.canClose))
	}
	return out, nil
}
