package guard

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/tidwall/gjson"
)

const (
	regionEnv = "AWS_REGION"

	urlTag          = "url"
	runtimeContext  = "runtime"
	lambdaContext   = "aws.lambda"
	logsContext     = "aws.cloudwatch.logs"
	functionURLBase = "awslambda:///"
)

// enrichScope attaches everything known about the failed invocation.
func (g *Guard) enrichScope(scope Scope, ic InvocationContext, event interface{}) {
	scope.SetTag(urlTag, functionURLBase+ic.FunctionName)

	scope.SetContext(runtimeContext, sentry.Context{
		"name":    "go",
		"version": runtime.Version(),
	})

	scope.SetContext(lambdaContext, sentry.Context{
		"aws_request_id":           ic.AwsRequestID,
		"function_name":            ic.FunctionName,
		"function_version":         ic.FunctionVersion,
		"invoked_function_arn":     ic.InvokedFunctionArn,
		"remaining_time_in_millis": ic.RemainingTime().Milliseconds(),
		"sys.argv":                 os.Args,
	})

	scope.SetContext(logsContext, sentry.Context{
		"log_group":  ic.LogGroupName,
		"log_stream": ic.LogStreamName,
		"url":        LogsURL(os.Getenv(regionEnv), ic.LogGroupName, ic.LogStreamName),
	})

	for k, v := range g.Tags {
		scope.SetTag(k, v)
	}
	for k, v := range g.eventTags(event) {
		scope.SetTag(k, v)
	}
}

// LogsURL links to the CloudWatch log stream of an invocation.
func LogsURL(region, logGroup, logStream string) string {
	return fmt.Sprintf(
		"https://console.aws.amazon.com/cloudwatch/home?region=%s#logsV2:log-groups/log-group/%s/log-events/%s",
		region, encodeURIComponent(logGroup), encodeURIComponent(logStream),
	)
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// eventTags resolves the configured gjson paths against the event.
func (g *Guard) eventTags(event interface{}) map[string]string {
	if len(g.EventTags) == 0 || event == nil {
		return nil
	}

	var raw []byte
	switch e := event.(type) {
	case []byte:
		raw = e
	case json.RawMessage:
		raw = e
	default:
		b, err := json.Marshal(event)
		if err != nil {
			if g.DebugMode {
				g.log.WithError(err).Debug("[Guard] Marshal event for tags failed")
			}
			return nil
		}
		raw = b
	}
	if !gjson.ValidBytes(raw) {
		return nil
	}

	tags := make(map[string]string, len(g.EventTags))
	for k, path := range g.EventTags {
		if r := gjson.GetBytes(raw, path); r.Exists() {
			tags[k] = r.String()
		}
	}
	return tags
}
