package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ClickUpClient talks to the task-tracking API. Records are always
// re-fetched per call; nothing here caches or writes back.
type ClickUpClient struct {
	BaseURL            string
	Token              string
	LeaveListID        string
	WorkCalendarListID string

	client *http.Client
}

func NewClickUpClient(cfg Config) *ClickUpClient {
	return &ClickUpClient{
		BaseURL:            strings.TrimRight(cfg.ClickUpBaseURL, "/"),
		Token:              cfg.ClickUpAPIToken,
		LeaveListID:        cfg.LeaveListID,
		WorkCalendarListID: cfg.WorkCalendarListID,
		client:             externalHTTPClient,
	}
}

func (c *ClickUpClient) Configured() bool {
	return c.Token != ""
}

func (c *ClickUpClient) leaveList() (string, error) {
	if c.LeaveListID == "" {
		return "", fmt.Errorf("%w: leave_list_id", ErrNotConfigured)
	}
	return c.LeaveListID, nil
}

func (c *ClickUpClient) workCalendarList() (string, error) {
	if c.WorkCalendarListID == "" {
		return "", fmt.Errorf("%w: work_calendar_list_id", ErrNotConfigured)
	}
	return c.WorkCalendarListID, nil
}

type TaskQuery struct {
	IncludeClosed bool
	Limit         int
	OrderBy       string
	Reverse       bool
}

// Tasks lists the tasks of one list. Subtasks are always excluded.
func (c *ClickUpClient) Tasks(listID string, q TaskQuery) ([]Task, error) {
	params := url.Values{}
	params.Set("include_closed", strconv.FormatBool(q.IncludeClosed))
	params.Set("subtasks", "false")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}
	if q.Reverse {
		params.Set("reverse", "true")
	}

	body, err := c.get(fmt.Sprintf("%s/list/%s/task?%s", c.BaseURL, url.PathEscape(listID), params.Encode()))
	if err != nil {
		return nil, err
	}
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing task list response: %w", err)
	}
	return out.Tasks, nil
}

// LeaveTasks lists everything on the configured leave list, closed included.
func (c *ClickUpClient) LeaveTasks() ([]Task, error) {
	listID, err := c.leaveList()
	if err != nil {
		return nil, err
	}
	return c.Tasks(listID, TaskQuery{IncludeClosed: true})
}

// RecentLeaveTasks lists the newest tasks first, for the new-request check.
func (c *ClickUpClient) RecentLeaveTasks(limit int) ([]Task, error) {
	listID, err := c.leaveList()
	if err != nil {
		return nil, err
	}
	return c.Tasks(listID, TaskQuery{IncludeClosed: true, Limit: limit, OrderBy: "created", Reverse: true})
}

// WorkCalendarTasks lists the squad-scheduling list.
func (c *ClickUpClient) WorkCalendarTasks() ([]Task, error) {
	listID, err := c.workCalendarList()
	if err != nil {
		return nil, err
	}
	return c.Tasks(listID, TaskQuery{IncludeClosed: true})
}

// Hierarchy walks a workspace: spaces, folderless lists, folders and their
// lists. Spaces or folders that fail to enumerate are skipped so one broken
// space cannot hide the rest of the workspace.
func (c *ClickUpClient) Hierarchy(workspaceID string) (Hierarchy, error) {
	var h Hierarchy

	body, err := c.get(fmt.Sprintf("%s/team/%s/space", c.BaseURL, url.PathEscape(workspaceID)))
	if err != nil {
		return h, err
	}
	var spacesResp struct {
		Spaces []Space `json:"spaces"`
	}
	if err := json.Unmarshal(body, &spacesResp); err != nil {
		return h, fmt.Errorf("parsing spaces response: %w", err)
	}
	h.Spaces = spacesResp.Spaces

	for _, space := range h.Spaces {
		if lists, err := c.listsAt(fmt.Sprintf("%s/space/%s/list", c.BaseURL, url.PathEscape(space.ID))); err == nil {
			for _, l := range lists {
				h.Lists = append(h.Lists, ListInfo{
					ID: l.ID, Name: l.Name,
					Space: space.Name, SpaceID: space.ID,
					Path: space.Name + " / " + l.Name,
				})
			}
		}

		foldersBody, err := c.get(fmt.Sprintf("%s/space/%s/folder", c.BaseURL, url.PathEscape(space.ID)))
		if err != nil {
			continue
		}
		var foldersResp struct {
			Folders []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"folders"`
		}
		if err := json.Unmarshal(foldersBody, &foldersResp); err != nil {
			continue
		}
		for _, folder := range foldersResp.Folders {
			folderPath := space.Name + " / " + folder.Name
			h.Folders = append(h.Folders, Folder{
				ID: folder.ID, Name: folder.Name,
				SpaceID: space.ID, SpaceName: space.Name,
				Path: folderPath,
			})
			lists, err := c.listsAt(fmt.Sprintf("%s/folder/%s/list", c.BaseURL, url.PathEscape(folder.ID)))
			if err != nil {
				continue
			}
			for _, l := range lists {
				h.Lists = append(h.Lists, ListInfo{
					ID: l.ID, Name: l.Name,
					Space: space.Name, SpaceID: space.ID,
					Folder: folder.Name, FolderID: folder.ID,
					Path: folderPath + " / " + l.Name,
				})
			}
		}
	}

	return h, nil
}

func (c *ClickUpClient) listsAt(apiURL string) ([]ListInfo, error) {
	body, err := c.get(apiURL)
	if err != nil {
		return nil, err
	}
	var out struct {
		Lists []ListInfo `json:"lists"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// FindByName filters the workspace hierarchy by a case-insensitive name
// substring. An empty term matches nothing.
func (c *ClickUpClient) FindByName(workspaceID, term string) (Hierarchy, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Hierarchy{}, nil
	}
	all, err := c.Hierarchy(workspaceID)
	if err != nil {
		return Hierarchy{}, err
	}
	var found Hierarchy
	for _, s := range all.Spaces {
		if strings.Contains(strings.ToLower(s.Name), term) {
			found.Spaces = append(found.Spaces, s)
		}
	}
	for _, f := range all.Folders {
		if strings.Contains(strings.ToLower(f.Name), term) {
			found.Folders = append(found.Folders, f)
		}
	}
	for _, l := range all.Lists {
		if strings.Contains(strings.ToLower(l.Name), term) {
			found.Lists = append(found.Lists, l)
		}
	}
	return found, nil
}

func (c *ClickUpClient) get(apiURL string) ([]byte, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("%w: clickup_api_token", ErrNotConfigured)
	}
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
