// Package tmpl renders the commit messages, branch names and pull request
// texts.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/simplesurance/prsync/internal/pipeline"
	"github.com/simplesurance/prsync/internal/stringutils"
)

// MaxBodyLen is the maximum length in bytes of pull request bodies and
// comments accepted by github.
const MaxBodyLen = 65536

const truncatedSuffix = "\n\n... (truncated)"

var templateFuncs = template.FuncMap{
	"indent": stringutils.IndentString,
	"join":   strings.Join,
}

// Data is passed to all templates.
type Data struct {
	// Branch is the branch that the commands were run for.
	Branch string
	// Base is the branch a pull request would be merged into.
	Base string
	// BasePRNumber is the number of the pull request of Branch, 0 if
	// none exists.
	BasePRNumber int
	// WorkBranch is the branch that contains the committed changes.
	WorkBranch string
	Repository string
	Files      []string
	Outputs    []*pipeline.CommandOutput
}

// Templates contains the template strings.
// Empty CommentBody and CloseMessage templates render to empty strings.
type Templates struct {
	BranchName    string
	CommitMessage string
	PRTitle       string
	PRBody        string
	CommentBody   string
	CloseMessage  string
}

type Renderer struct {
	branchName    *template.Template
	commitMessage *template.Template
	prTitle       *template.Template
	prBody        *template.Template
	commentBody   *template.Template
	closeMessage  *template.Template
}

// New parses all templates.
func New(t *Templates) (*Renderer, error) {
	var r Renderer

	for _, def := range []struct {
		name string
		text string
		dst  **template.Template
	}{
		{"branch_name", t.BranchName, &r.branchName},
		{"commit_message", t.CommitMessage, &r.commitMessage},
		{"pr_title", t.PRTitle, &r.prTitle},
		{"pr_body", t.PRBody, &r.prBody},
		{"pr_comment_body", t.CommentBody, &r.commentBody},
		{"pr_close_message", t.CloseMessage, &r.closeMessage},
	} {
		templ, err := template.New(def.name).Funcs(templateFuncs).Option("missingkey=error").Parse(def.text)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template failed: %w", def.name, err)
		}

		*def.dst = templ
	}

	return &r, nil
}

func render(templ *template.Template, data *Data) (string, error) {
	var out bytes.Buffer

	if err := templ.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering %s template failed: %w", templ.Name(), err)
	}

	return out.String(), nil
}

// BranchName renders the name of the branch without prefix.
func (r *Renderer) BranchName(data *Data) (string, error) {
	s, err := render(r.branchName, data)
	if err != nil {
		return "", err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("branch_name template rendered to an empty string for branch %q", data.Branch)
	}

	return s, nil
}

func (r *Renderer) CommitMessage(data *Data) (string, error) {
	s, err := render(r.commitMessage, data)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(s), nil
}

func (r *Renderer) PRTitle(data *Data) (string, error) {
	s, err := render(r.prTitle, data)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(s), nil
}

func (r *Renderer) PRBody(data *Data) (string, error) {
	s, err := render(r.prBody, data)
	if err != nil {
		return "", err
	}

	return stringutils.Truncate(s, MaxBodyLen, truncatedSuffix), nil
}

// CommentBody renders the comment that is posted when an existing pull
// request is updated.
func (r *Renderer) CommentBody(data *Data) (string, error) {
	s, err := render(r.commentBody, data)
	if err != nil {
		return "", err
	}

	return stringutils.Truncate(s, MaxBodyLen, truncatedSuffix), nil
}

// CloseMessage renders the comment that is posted before a pull request is
// closed.
func (r *Renderer) CloseMessage(data *Data) (string, error) {
	return render(r.closeMessage, data)
}
