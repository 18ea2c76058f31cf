package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// invocationBody is the inner JSON document the scoring function parses. The
// function is fronted by an API-gateway style runtime, so the document is
// serialized as a string under a "body" key.
type invocationBody struct {
	JobTitle       string   `json:"jobTitle"`
	JobDescription string   `json:"jobDescription"`
	JobLocation    string   `json:"jobLocation"`
	JobCategory    string   `json:"jobCategory"`
	JobLevel       string   `json:"jobLevel"`
	JobSalary      string   `json:"jobSalary"`
	RequiredSkills []string `json:"requiredSkills"`
	UserSkills     []string `json:"userSkills"`
	UserBio        string   `json:"userBio"`
	UserRole       string   `json:"userRole"`
	ResumeURL      string   `json:"resumeUrl"`
	ApplicationID  string   `json:"applicationId"`
	BackendURL     string   `json:"backendUrl"`
	CallbackToken  string   `json:"callbackToken"`
}

// Invoker fires the external scoring function asynchronously. Event-type
// invocations return as soon as the function is queued; results come back
// through the scoring callback endpoint.
type Invoker struct {
	client        *lambda.Client
	functionName  string
	backendURL    string
	callbackToken string
}

func NewInvoker(cfg aws.Config, functionName, backendURL, callbackToken string) *Invoker {
	return &Invoker{
		client:        lambda.NewFromConfig(cfg),
		functionName:  functionName,
		backendURL:    backendURL,
		callbackToken: callbackToken,
	}
}

// Invoke queues one scoring run for the given application.
func (i *Invoker) Invoke(ctx context.Context, req ports.ScoringRequest) error {
	body := invocationBody{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		JobLocation:    req.JobLocation,
		JobCategory:    req.JobCategory,
		JobLevel:       req.JobLevel,
		JobSalary:      req.JobSalary,
		RequiredSkills: req.RequiredSkills,
		UserSkills:     req.UserSkills,
		UserBio:        req.UserBio,
		UserRole:       req.UserRole,
		ResumeURL:      req.ResumeURL,
		ApplicationID:  req.ApplicationID,
		BackendURL:     i.backendURL,
		CallbackToken:  i.callbackToken,
	}

	inner, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("scoring payload: %w", err)
	}
	payload, err := json.Marshal(map[string]string{"body": string(inner)})
	if err != nil {
		return fmt.Errorf("scoring payload: %w", err)
	}

	out, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(i.functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("scoring invoke: %w", err)
	}
	if out.FunctionError != nil {
		return fmt.Errorf("scoring invoke: function error: %s", *out.FunctionError)
	}
	if out.StatusCode < 200 || out.StatusCode >= 300 {
		return fmt.Errorf("scoring invoke: unexpected status %d", out.StatusCode)
	}
	return nil
}
