package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/cipherlab/internal/audit"
	"github.com/PolarWolf314/cipherlab/internal/configs"
	"github.com/PolarWolf314/cipherlab/internal/corpus"
	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"github.com/PolarWolf314/cipherlab/internal/ui"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message and writes it to out.
func startSpinner(message string, out io.Writer) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it as well.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// loadSettings reads the config file, dotenv file and environment named by the global flags.
func loadSettings() (*configs.Settings, error) {
	Logger.Debugf("Loading settings from config=%s env-file=%s", configPath, envFile)
	settings, err := configs.LoadSettings(configPath, envFile)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// newRunner builds a workflow runner from settings. Artifacts are left nil;
// only the server opens the artifact store.
func newRunner(settings *configs.Settings) (*workflows.Runner, error) {
	mode, err := settings.KeyMode()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Key mode: %s, excerpts: %s, passwords: %s", mode, settings.Corpus.ExcerptsPath, settings.Corpus.PasswordsPath)

	return &workflows.Runner{
		Corpus:   corpus.NewLoader(settings.Corpus.ExcerptsPath, settings.Corpus.PasswordsPath),
		KeyMode:  mode,
		Username: settings.Bundle.Username,
		Audit:    audit.New(settings.Audit.Path),
	}, nil
}

// loadRunner is loadSettings followed by newRunner.
func loadRunner() (*workflows.Runner, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return newRunner(settings)
}

// Explain renders err for the terminal, adding a hint for errors users can fix.
func Explain(err error) string {
	msg := ui.Failed(err.Error())
	switch {
	case errors.Is(err, cerrors.ErrInvalidIdentity):
		msg += "\n" + ui.Hint("Identities are numeric, for example "+ui.Highlight.Sprint("20250001"))
	case errors.Is(err, cerrors.ErrCorpusUnavailable):
		msg += "\n" + ui.Hint("Check the corpus paths in "+ui.Path.Sprint(configPath)+" or run "+ui.Code.Sprint("cipherlab config show"))
	case errors.Is(err, cerrors.ErrEmptyCandidates):
		msg += "\n" + ui.Hint("The corpus file has no usable entries")
	case errors.Is(err, cerrors.ErrInvalidKeyMode):
		msg += "\n" + ui.Hint("Valid key modes are "+ui.Highlight.Sprint("shared")+" and "+ui.Highlight.Sprint("split"))
	case errors.Is(err, cerrors.ErrInvalidPadding), errors.Is(err, cerrors.ErrInvalidCiphertext):
		msg += "\n" + ui.Hint("Was this bundle issued to the same identity and key mode?")
	}
	return msg
}
