package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"tasnim.dev/aws-perms/internal/perms"
)

const (
	RootMessage    = "The provided credentials are for an AWS root account! These credentials have ALL permissions."
	NothingMessage = "No permissions could be dumped."
)

// Format selects the stdout rendering of a Result.
type Format string

const (
	FormatLog  Format = "log" // log lines only, nothing on stdout
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatLog, nil
	case FormatLog, FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want log, json, yaml or text)", s)
	}
}

// Log emits the human-readable outcome: one info line for root, one info
// line per document, or a warning when there is nothing to show.
func Log(logger hclog.Logger, res perms.Result) {
	if res.Outcome == perms.OutcomeRoot {
		logger.Info(RootMessage)
		return
	}
	if len(res.Documents) == 0 {
		logger.Warn(NothingMessage)
		return
	}
	for _, doc := range res.Documents {
		logger.Info(doc.Pretty())
	}
}

// Write renders res to w in the given format. FormatLog writes nothing.
func Write(w io.Writer, format Format, res perms.Result) error {
	switch format {
	case FormatLog:
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResult(res))
	case FormatYAML:
		v, err := plain(res)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		_, err := lipgloss.Fprint(w, renderText(res))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// jsonResult keeps "documents" an array even when empty.
func jsonResult(res perms.Result) perms.Result {
	if res.Documents == nil {
		res.Documents = []perms.PolicyDocument{}
	}
	return res
}

// plain converts res to generic maps so json.Number values render as YAML
// numbers rather than strings.
func plain(res perms.Result) (any, error) {
	data, err := json.Marshal(jsonResult(res))
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func renderText(res perms.Result) string {
	db := newDetailBuilder(10, titleStyle)

	db.Section("aws-perms")
	db.Row("Outcome", OutcomeStyle(res.Outcome).Render(string(res.Outcome)))
	db.Row("User", res.User)

	switch {
	case res.Outcome == perms.OutcomeRoot:
		db.Block(OutcomeStyle(perms.OutcomeRoot).Render(RootMessage))
	case len(res.Documents) == 0:
		db.Block(warningStyle.Render(NothingMessage))
	default:
		for i, doc := range res.Documents {
			db.Section(fmt.Sprintf("Document %d", i+1))
			db.Block(documentStyle.Render(doc.Pretty()))
		}
	}
	return db.String()
}
