package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/netscout/shodan/internal/types"
)

var (
	alertCreateDescriptor = Descriptor{Name: "alert_create", Method: http.MethodPost, Path: "/shodan/alert", Body: BodyJSON}
	alertDescriptor       = Descriptor{Name: "alert", Method: http.MethodGet, Path: "/shodan/alert/{id}/info"}
	alertDeleteDescriptor = Descriptor{Name: "alert_delete", Method: http.MethodDelete, Path: "/shodan/alert/{id}"}
	alertEditDescriptor   = Descriptor{Name: "alert_edit", Method: http.MethodPost, Path: "/shodan/alert/{id}", Body: BodyJSON}
	alertsDescriptor      = Descriptor{Name: "alerts", Method: http.MethodGet, Path: "/shodan/alert/info"}

	alertTriggersDescriptor      = Descriptor{Name: "alert_triggers", Method: http.MethodGet, Path: "/shodan/alert/triggers"}
	alertTriggerAddDescriptor    = Descriptor{Name: "alert_trigger_add", Method: http.MethodPut, Path: "/shodan/alert/{id}/trigger/{trigger}"}
	alertTriggerDeleteDescriptor = Descriptor{Name: "alert_trigger_delete", Method: http.MethodDelete, Path: "/shodan/alert/{id}/trigger/{trigger}"}

	alertIgnoreAddDescriptor = Descriptor{
		Name: "alert_ignore_add", Method: http.MethodPut, Path: "/shodan/alert/{id}/trigger/{trigger}/ignore/{service}",
	}
	alertIgnoreDeleteDescriptor = Descriptor{
		Name: "alert_ignore_delete", Method: http.MethodDelete, Path: "/shodan/alert/{id}/trigger/{trigger}/ignore/{service}",
	}

	alertNotifierAddDescriptor = Descriptor{
		Name: "alert_notifier_add", Method: http.MethodPut, Path: "/shodan/alert/{id}/notifier/{notifier_id}",
	}
	alertNotifierDeleteDescriptor = Descriptor{
		Name: "alert_notifier_delete", Method: http.MethodDelete, Path: "/shodan/alert/{id}/notifier/{notifier_id}",
	}
)

// CreateAlert creates a network alert for the given IPs/netblocks.
func CreateAlert(ctx context.Context, r Requester, req types.CreateAlertRequest) (*types.Response, error) {
	if err := checkAlertIPs(alertCreateDescriptor, req.Filters.IP); err != nil {
		return nil, err
	}
	return r.Do(ctx, alertCreateDescriptor, Call{JSON: req})
}

// Alert returns the details of one network alert.
func Alert(ctx context.Context, r Requester, id string) (*types.Response, error) {
	return r.Do(ctx, alertDescriptor, Call{Path: pathValues("id", id)})
}

// DeleteAlert removes a network alert.
func DeleteAlert(ctx context.Context, r Requester, id string) (*types.Response, error) {
	return r.Do(ctx, alertDeleteDescriptor, Call{Path: pathValues("id", id)})
}

// EditAlert replaces the networks monitored by an alert.
func EditAlert(ctx context.Context, r Requester, id string, ips []string) (*types.Response, error) {
	if err := checkAlertIPs(alertEditDescriptor, ips); err != nil {
		return nil, err
	}
	body := types.EditAlertRequest{Filters: types.AlertFilters{IP: ips}}
	return r.Do(ctx, alertEditDescriptor, Call{Path: pathValues("id", id), JSON: body})
}

// checkAlertIPs requires at least one non-blank IP or netblock, so the body
// never carries "ip": null.
func checkAlertIPs(d Descriptor, ips []string) error {
	if len(ips) == 0 {
		return d.invalid("at least one IP or netblock is required")
	}
	for _, ip := range ips {
		if strings.TrimSpace(ip) == "" {
			return d.invalid("blank IP or netblock")
		}
	}
	return nil
}

// Alerts lists every network alert on the account.
func Alerts(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, alertsDescriptor, Call{})
}

// AlertTriggers lists the triggers an alert can be enabled for.
func AlertTriggers(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, alertTriggersDescriptor, Call{})
}

// AddAlertTrigger enables one or more comma-separated triggers on an alert.
func AddAlertTrigger(ctx context.Context, r Requester, id, trigger string) (*types.Response, error) {
	return r.Do(ctx, alertTriggerAddDescriptor, Call{Path: pathValues("id", id, "trigger", trigger)})
}

// DeleteAlertTrigger disables triggers on an alert.
func DeleteAlertTrigger(ctx context.Context, r Requester, id, trigger string) (*types.Response, error) {
	return r.Do(ctx, alertTriggerDeleteDescriptor, Call{Path: pathValues("id", id, "trigger", trigger)})
}

// IgnoreTriggerService stops a trigger from firing for one "ip:port" service.
func IgnoreTriggerService(ctx context.Context, r Requester, id, trigger, service string) (*types.Response, error) {
	return r.Do(ctx, alertIgnoreAddDescriptor, Call{Path: pathValues("id", id, "trigger", trigger, "service", service)})
}

// UnignoreTriggerService resumes notifications for a previously ignored service.
func UnignoreTriggerService(ctx context.Context, r Requester, id, trigger, service string) (*types.Response, error) {
	return r.Do(ctx, alertIgnoreDeleteDescriptor, Call{Path: pathValues("id", id, "trigger", trigger, "service", service)})
}

// AddAlertNotifier attaches a notifier to an alert.
func AddAlertNotifier(ctx context.Context, r Requester, id, notifierID string) (*types.Response, error) {
	return r.Do(ctx, alertNotifierAddDescriptor, Call{Path: pathValues("id", id, "notifier_id", notifierID)})
}

// DeleteAlertNotifier detaches a notifier from an alert.
func DeleteAlertNotifier(ctx context.Context, r Requester, id, notifierID string) (*types.Response, error) {
	return r.Do(ctx, alertNotifierDeleteDescriptor, Call{Path: pathValues("id", id, "notifier_id", notifierID)})
}
