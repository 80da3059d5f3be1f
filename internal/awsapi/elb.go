package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"

	"cloudmon/internal/health"
)

// ELBSource fetches instance health for a classic load balancer. The ELB API
// reports state per instance but not its availability zone, so zones are
// resolved through EC2 instance placement.
type ELBSource struct {
	elb *elb.Client
	ec2 *ec2.Client
}

// NewELBSource creates an ELBSource from an AWS client config.
func NewELBSource(cfg aws.Config) *ELBSource {
	return &ELBSource{
		elb: elb.NewFromConfig(cfg),
		ec2: ec2.NewFromConfig(cfg),
	}
}

// InstanceHealth implements mon.InstanceHealthSource.
func (s *ELBSource) InstanceHealth(ctx context.Context, elbName string) ([]health.InstanceHealth, error) {
	out, err := s.elb.DescribeInstanceHealth(ctx, &elb.DescribeInstanceHealthInput{
		LoadBalancerName: aws.String(elbName),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeInstanceHealth %s: %w", elbName, err)
	}
	if len(out.InstanceStates) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(out.InstanceStates))
	for _, st := range out.InstanceStates {
		ids = append(ids, aws.ToString(st.InstanceId))
	}
	zones, err := s.zonesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	return instanceRecords(out.InstanceStates, zones), nil
}

// zonesFor maps instance ids to their availability zone.
func (s *ELBSource) zonesFor(ctx context.Context, ids []string) (map[string]string, error) {
	zones := make(map[string]string, len(ids))
	out, err := s.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: ids})
	if err != nil {
		return nil, fmt.Errorf("DescribeInstances: %w", err)
	}
	for _, res := range out.Reservations {
		for _, inst := range res.Instances {
			if inst.Placement != nil {
				zones[aws.ToString(inst.InstanceId)] = aws.ToString(inst.Placement.AvailabilityZone)
			}
		}
	}
	return zones, nil
}

// instanceRecords merges ELB instance states with resolved zones, keeping
// the API's record order.
func instanceRecords(states []elbtypes.InstanceState, zones map[string]string) []health.InstanceHealth {
	records := make([]health.InstanceHealth, 0, len(states))
	for _, st := range states {
		id := aws.ToString(st.InstanceId)
		records = append(records, health.InstanceHealth{
			InstanceID:  id,
			Zone:        zones[id],
			State:       aws.ToString(st.State),
			Description: aws.ToString(st.Description),
		})
	}
	return records
}
