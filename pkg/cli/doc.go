/*
Package cli provides command-line interface utilities for chatifier.

The cli package includes output formatters, the detection progress bar,
signal handling, the token prompt and the error types used by the chatifier
command.

Output Formatting:

Commands print results as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

Detection can send dozens of probes; the progress bar shows them:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(cli.MaxProbes(len(ports)))
	d := detect.New(prober, detect.WithProgress(cli.DetectionProgress(progress)))
	res := d.Detect(ctx, target)
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Prompting:

	token, err := cli.NewPrompter().Secret("Enter API token: ")
*/
package cli
