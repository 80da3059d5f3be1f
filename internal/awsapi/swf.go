package awsapi

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/swf"
	swftypes "github.com/aws/aws-sdk-go-v2/service/swf/types"

	"cloudmon/internal/workflow"
)

// SWFSource lists open workflow executions with their first and most recent
// history events. It also serves as the classifier's history refetch.
type SWFSource struct {
	client *swf.Client
}

// NewSWFSource creates an SWFSource from an AWS client config.
func NewSWFSource(cfg aws.Config) *SWFSource {
	return &SWFSource{client: swf.NewFromConfig(cfg)}
}

// OpenExecutions implements mon.ExecutionSource.
func (s *SWFSource) OpenExecutions(ctx context.Context, domain string, window time.Duration) ([]workflow.Execution, error) {
	oldest := time.Now().Add(-window)
	var execs []workflow.Execution
	var pageToken *string
	for {
		out, err := s.client.ListOpenWorkflowExecutions(ctx, &swf.ListOpenWorkflowExecutionsInput{
			Domain:          aws.String(domain),
			StartTimeFilter: &swftypes.ExecutionTimeFilter{OldestDate: aws.Time(oldest)},
			NextPageToken:   pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListOpenWorkflowExecutions %s: %w", domain, err)
		}
		for _, info := range out.ExecutionInfos {
			exec, err := s.executionView(ctx, domain, info.Execution)
			if err != nil {
				return nil, err
			}
			execs = append(execs, exec)
		}
		if out.NextPageToken == nil {
			return execs, nil
		}
		pageToken = out.NextPageToken
	}
}

// executionView resolves the first and most recent history events of one
// execution.
func (s *SWFSource) executionView(ctx context.Context, domain string, we *swftypes.WorkflowExecution) (workflow.Execution, error) {
	first, err := s.boundaryEvent(ctx, domain, we, false)
	if err != nil {
		return workflow.Execution{}, err
	}
	last, err := s.boundaryEvent(ctx, domain, we, true)
	if err != nil {
		return workflow.Execution{}, err
	}
	return workflow.Execution{
		Domain:     domain,
		WorkflowID: aws.ToString(we.WorkflowId),
		RunID:      aws.ToString(we.RunId),
		First:      first,
		Last:       last,
	}, nil
}

// LatestEventID implements workflow.HistorySource by refetching the most
// recent history event.
func (s *SWFSource) LatestEventID(ctx context.Context, exec workflow.Execution) (int64, error) {
	we := &swftypes.WorkflowExecution{
		WorkflowId: aws.String(exec.WorkflowID),
		RunId:      aws.String(exec.RunID),
	}
	ev, err := s.boundaryEvent(ctx, exec.Domain, we, true)
	if err != nil {
		return 0, err
	}
	return ev.ID, nil
}

// boundaryEvent fetches the first (reverse=false) or most recent
// (reverse=true) history event of an execution.
func (s *SWFSource) boundaryEvent(ctx context.Context, domain string, we *swftypes.WorkflowExecution, reverse bool) (workflow.Event, error) {
	out, err := s.client.GetWorkflowExecutionHistory(ctx, &swf.GetWorkflowExecutionHistoryInput{
		Domain:          aws.String(domain),
		Execution:       we,
		ReverseOrder:    reverse,
		MaximumPageSize: 1,
	})
	if err != nil {
		return workflow.Event{}, fmt.Errorf("GetWorkflowExecutionHistory %s/%s: %w",
			aws.ToString(we.WorkflowId), aws.ToString(we.RunId), err)
	}
	if len(out.Events) == 0 {
		return workflow.Event{}, fmt.Errorf("execution %s/%s has no history events",
			aws.ToString(we.WorkflowId), aws.ToString(we.RunId))
	}
	return eventFrom(out.Events[0]), nil
}

// eventFrom maps an SWF history event to the classifier's event view.
func eventFrom(he swftypes.HistoryEvent) workflow.Event {
	ev := workflow.Event{
		ID:   he.EventId,
		Type: string(he.EventType),
	}
	if a := he.ActivityTaskStartedEventAttributes; a != nil {
		ev.Identity = aws.ToString(a.Identity)
	}
	if a := he.DecisionTaskStartedEventAttributes; a != nil {
		ev.Identity = aws.ToString(a.Identity)
	}
	if a := he.WorkflowExecutionStartedEventAttributes; a != nil {
		ev.Input = aws.ToString(a.Input)
	}
	return ev
}
