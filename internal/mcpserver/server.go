// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz calendar tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/eventservice"
	"github.com/starford/dagaz/internal/models"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp *server.MCPServer
	svc *eventservice.Service
}

// New creates a new MCP server with all Dagaz tools registered.
func New(svc *eventservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List events ordered by start time, optionally restricted to a date range."),
		mcp.WithString("from", mcp.Description("First day, YYYY-MM-DD (optional)")),
		mcp.WithString("to", mcp.Description("Day after the last, YYYY-MM-DD (optional, defaults to from + 1 day)")),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("get_event",
		mcp.WithDescription("Read one event by identifier."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event identifier")),
	), s.getEvent)

	s.mcp.AddTool(mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event. Fields MUST follow the event format contract; "+
			"read it via get_event_contract or the dagaz://event-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("start", mcp.Required(), mcp.Description("Start, RFC 3339 timestamp")),
		mcp.WithString("end", mcp.Required(), mcp.Description("End, RFC 3339 timestamp, not before start")),
		mcp.WithBoolean("all_day", mcp.Description("All-day event")),
		mcp.WithString("location", mcp.Description("Location")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("category", mcp.Description("primary, secondary, success, warning, danger or info")),
		mcp.WithString("attendees", mcp.Description("Comma-separated attendee names")),
	), s.createEvent)

	s.mcp.AddTool(mcp.NewTool("update_event",
		mcp.WithDescription("Replace every editable field of an event. Omitted optional fields are cleared."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event identifier")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("start", mcp.Required(), mcp.Description("Start, RFC 3339 timestamp")),
		mcp.WithString("end", mcp.Required(), mcp.Description("End, RFC 3339 timestamp, not before start")),
		mcp.WithBoolean("all_day", mcp.Description("All-day event")),
		mcp.WithString("location", mcp.Description("Location")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("category", mcp.Description("primary, secondary, success, warning, danger or info")),
		mcp.WithString("attendees", mcp.Description("Comma-separated attendee names")),
	), s.updateEvent)

	s.mcp.AddTool(mcp.NewTool("delete_event",
		mcp.WithDescription("Delete an event by identifier."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event identifier")),
	), s.deleteEvent)

	s.mcp.AddTool(mcp.NewTool("month_grid",
		mcp.WithDescription("The 6x7 month grid containing a date, with the events on each day."),
		mcp.WithString("date", mcp.Description("Any day of the month, YYYY-MM-DD (default today)")),
	), s.monthGrid)

	s.mcp.AddTool(mcp.NewTool("search_events",
		mcp.WithDescription("Full-text search through event titles, descriptions, locations and attendees."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEvents)

	s.mcp.AddTool(mcp.NewTool("upcoming_events",
		mcp.WithDescription("Events starting today or later, soonest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events (default 5)")),
	), s.upcomingEvents)

	s.mcp.AddTool(mcp.NewTool("import_ics",
		mcp.WithDescription("Import every VEVENT from an iCalendar feed. Accepts an http(s) URL or a "+
			"base64 data:text/calendar URI."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Feed URL or data URI")),
	), s.importICS)

	s.mcp.AddTool(mcp.NewTool("get_event_contract",
		mcp.WithDescription("Returns the Dagaz event format contract. "+
			"Call this before creating or updating events."),
	), s.getEventContract)

	s.mcp.AddResource(
		mcp.NewResource("dagaz://event-format", "Event Format Contract",
			mcp.WithResourceDescription("Field rules every calendar event must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEventFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("event not found")
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) day(req mcp.CallToolRequest, key string) (time.Time, error) {
	v := req.GetString(key, "")
	if v == "" {
		return s.svc.Engine().Today(), nil
	}
	return calendar.ParseDate(v, s.svc.Engine().Location())
}

// eventFields reads the shared create/update arguments.
func (s *Server) eventFields(req mcp.CallToolRequest) (models.Fields, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return models.Fields{}, err
	}
	var start, end time.Time
	for _, arg := range []struct {
		key string
		dst *time.Time
	}{{"start", &start}, {"end", &end}} {
		v, err := req.RequireString(arg.key)
		if err != nil {
			return models.Fields{}, err
		}
		if *arg.dst, err = time.Parse(time.RFC3339, v); err != nil {
			return models.Fields{}, fmt.Errorf("%s: %w", arg.key, err)
		}
	}

	var attendees []string
	for _, a := range strings.Split(req.GetString("attendees", ""), ",") {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	return models.Fields{
		Title:       title,
		Start:       start.In(s.svc.Engine().Location()),
		End:         end.In(s.svc.Engine().Location()),
		AllDay:      req.GetBool("all_day", false),
		Location:    req.GetString("location", ""),
		Description: req.GetString("description", ""),
		Category:    models.Category(req.GetString("category", "")),
		Attendees:   attendees,
	}, nil
}

func (s *Server) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetString("from", "") == "" && req.GetString("to", "") == "" {
		return jsonResult(s.svc.ListEvents(ctx)), nil
	}
	from, err := s.day(req, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to := from.AddDate(0, 0, 1)
	if req.GetString("to", "") != "" {
		if to, err = s.day(req, "to"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	events, err := s.svc.EventsInRange(ctx, from, to)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(events), nil
}

func (s *Server) getEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := s.svc.GetEvent(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(ev), nil
}

func (s *Server) createEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := s.eventFields(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := s.svc.CreateEvent(ctx, f)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(ev), nil
}

func (s *Server) updateEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := s.eventFields(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := s.svc.UpdateEvent(ctx, id, f)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(ev), nil
}

func (s *Server) deleteEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteEvent(ctx, id); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) monthGrid(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := s.day(req, "date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.MonthGrid(ctx, ref)), nil
}

func (s *Server) searchEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return toolError(err), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no events found"), nil
	}
	return jsonResult(results), nil
}

func (s *Server) upcomingEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", eventservice.DefaultUpcoming)
	return jsonResult(s.svc.Upcoming(ctx, limit)), nil
}

func (s *Server) getEventContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EventFormatContract), nil
}

func (s *Server) readEventFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://event-format",
			MIMEType: "text/markdown",
			Text:     EventFormatContract,
		},
	}, nil
}
