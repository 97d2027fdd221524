// Package crawler describes the Glue crawler the trigger starts.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
)

// GetCrawlerAPI is the slice of the Glue client used by Describer. *glue.Client satisfies it.
type GetCrawlerAPI interface {
	GetCrawler(ctx context.Context, params *glue.GetCrawlerInput, optFns ...func(*glue.Options)) (*glue.GetCrawlerOutput, error)
}

// Status is a read-only snapshot of a crawler.
type Status struct {
	Name         string     `json:"name" yaml:"name"`
	State        string     `json:"state" yaml:"state"`
	DatabaseName string     `json:"databaseName,omitempty" yaml:"databaseName,omitempty"`
	TablePrefix  string     `json:"tablePrefix,omitempty" yaml:"tablePrefix,omitempty"`
	Targets      []string   `json:"targets" yaml:"targets"`
	LastCrawl    *LastCrawl `json:"lastCrawl,omitempty" yaml:"lastCrawl,omitempty"`
}

type LastCrawl struct {
	Status       string     `json:"status" yaml:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty" yaml:"startTime,omitempty"`
}

// Describer reads the state of one named crawler.
type Describer struct {
	api  GetCrawlerAPI
	name string
}

func NewDescriber(api GetCrawlerAPI, name string) *Describer {
	return &Describer{api: api, name: name}
}

func (d *Describer) Describe(ctx context.Context) (Status, error) {
	out, err := d.api.GetCrawler(ctx, &glue.GetCrawlerInput{Name: aws.String(d.name)})
	if err != nil {
		return Status{}, fmt.Errorf("get crawler %s: %w", d.name, err)
	}
	if out == nil || out.Crawler == nil {
		return Status{}, fmt.Errorf("get crawler %s: empty response", d.name)
	}
	return newStatus(out.Crawler), nil
}

func newStatus(c *types.Crawler) Status {
	status := Status{
		Name:         aws.ToString(c.Name),
		State:        string(c.State),
		DatabaseName: aws.ToString(c.DatabaseName),
		TablePrefix:  aws.ToString(c.TablePrefix),
		Targets:      []string{},
	}
	if c.Targets != nil {
		for _, target := range c.Targets.S3Targets {
			if path := aws.ToString(target.Path); path != "" {
				status.Targets = append(status.Targets, path)
			}
		}
	}
	if c.LastCrawl != nil {
		status.LastCrawl = &LastCrawl{
			Status:       string(c.LastCrawl.Status),
			ErrorMessage: aws.ToString(c.LastCrawl.ErrorMessage),
			StartTime:    c.LastCrawl.StartTime,
		}
	}
	return status
}
