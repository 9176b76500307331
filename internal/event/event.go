// Package event determines what triggered a run from the GitHub Actions
// event name and payload.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
)

// Kind is the type of the event that triggered a run.
type Kind string

const (
	// KindPush is a push of a branch, the pushed branch is synchronized.
	KindPush Kind = "push"
	// KindPullRequest is an opened, reopened, synchronized or labeled
	// pull request, its head branch is synchronized.
	KindPullRequest Kind = "pull_request"
	// KindPullRequestClosed is a closed pull request, it causes a scan of
	// all branches in which no changes are pushed.
	KindPullRequestClosed Kind = "pull_request_closed"
	// KindSchedule is every other event, it causes a scan of all branches.
	KindSchedule Kind = "schedule"
)

// IsBatch returns true if events of the kind are processed by scanning all
// branches.
func (k Kind) IsBatch() bool {
	return k == KindSchedule || k == KindPullRequestClosed
}

// Event is the triggering event.
type Event struct {
	Kind Kind
	// Name is the GitHub event name (GITHUB_EVENT_NAME).
	Name   string
	Action string

	RepositoryOwner string
	Repository      string

	// Branch is the pushed branch or the head branch of the pull
	// request.
	Branch     string
	BaseBranch string
	// HeadOwner is the owner of the repository of the pull request head
	// branch.
	HeadOwner     string
	PullRequestNr int
	Labels        []string

	// PullRequestJSON is the JSON representation of the pull request,
	// nil for non-pull-request events.
	PullRequestJSON []byte
}

type pushEventRepoGetter interface {
	GetRepo() *github.PushEventRepository
}

type repoGetter interface {
	GetRepo() *github.Repository
}

type refGetter interface {
	GetRef() string
}

// FromEnv parses the event described by the GITHUB_EVENT_NAME and
// GITHUB_EVENT_PATH environment variables.
// If GITHUB_EVENT_NAME is not set, a KindSchedule event is returned.
func FromEnv() (*Event, error) {
	name := os.Getenv("GITHUB_EVENT_NAME")
	if name == "" {
		return &Event{Kind: KindSchedule}, nil
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return Parse(name, nil)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload failed: %w", err)
	}

	return Parse(name, payload)
}

// Parse converts a GitHub event to an Event.
// Only push and pull_request payloads are parsed, all other events are
// KindSchedule events.
func Parse(name string, payload []byte) (*Event, error) {
	switch name {
	case "push", "pull_request", "pull_request_target":
	default:
		return &Event{Kind: KindSchedule, Name: name}, nil
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("payload of %s event is empty", name)
	}

	webhookType := name
	if name == "pull_request_target" {
		webhookType = "pull_request"
	}

	ghEvent, err := github.ParseWebHook(webhookType, payload)
	if err != nil {
		return nil, fmt.Errorf("parsing %s event payload failed: %w", name, err)
	}

	result := extractEventInfo(ghEvent)
	result.Name = name

	switch v := ghEvent.(type) {
	case *github.PushEvent:
		if result.Branch == "" {
			return nil, fmt.Errorf("push event has unsupported ref: %q, expecting a branch", v.GetRef())
		}

		result.Kind = KindPush

	case *github.PullRequestEvent:
		if err := result.fromPullRequestEvent(v); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported event type: %T", ghEvent)
	}

	return result, nil
}

func (e *Event) fromPullRequestEvent(ev *github.PullRequestEvent) error {
	pr := ev.GetPullRequest()
	if pr == nil {
		return errors.New("pull_request event does not contain a pull request")
	}

	e.Action = ev.GetAction()
	e.PullRequestNr = pr.GetNumber()
	// ref in PullRequestEvent contains **only**
	// the branch name without 'refs/heads/ prefix
	e.Branch = pr.GetHead().GetRef()
	e.HeadOwner = pr.GetHead().GetRepo().GetOwner().GetLogin()
	e.BaseBranch = pr.GetBase().GetRef()

	for _, l := range pr.Labels {
		e.Labels = append(e.Labels, l.GetName())
	}

	var err error
	e.PullRequestJSON, err = json.Marshal(pr)
	if err != nil {
		return fmt.Errorf("marshaling pull request failed: %w", err)
	}

	switch e.Action {
	case "closed":
		e.Kind = KindPullRequestClosed
	case "opened", "reopened", "synchronize", "labeled":
		e.Kind = KindPullRequest
	default:
		e.Kind = KindSchedule
	}

	return nil
}

func extractEventInfo(ghEvent any) *Event {
	var result Event

	if v, ok := ghEvent.(pushEventRepoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			result.Repository = repo.GetName()
			result.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	} else if v, ok := ghEvent.(repoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			result.Repository = repo.GetName()
			result.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	}

	if v, ok := ghEvent.(refGetter); ok {
		ref := v.GetRef()
		if strings.HasPrefix(ref, "refs/heads/") {
			result.Branch = strings.TrimPrefix(ref, "refs/heads/")
		}
	}

	return &result
}

// LogFields returns zap fields describing the event.
func (e *Event) LogFields() []zap.Field {
	result := []zap.Field{zap.String("github.event", e.Name), zap.String("event_kind", string(e.Kind))}

	if e.Action != "" {
		result = append(result, zap.String("github.event_action", e.Action))
	}

	if e.Repository != "" {
		result = append(result, logfields.Repository(e.Repository))
	}

	if e.RepositoryOwner != "" {
		result = append(result, logfields.RepositoryOwner(e.RepositoryOwner))
	}

	if e.Branch != "" {
		result = append(result, logfields.Branch(e.Branch))
	}

	if e.BaseBranch != "" {
		result = append(result, logfields.BaseBranch(e.BaseBranch))
	}

	if e.PullRequestNr != 0 {
		result = append(result, logfields.PullRequest(e.PullRequestNr))
	}

	return result
}
