package client

import (
	"context"
	"io/ioutil"
	"mime"
	"net/http"
	"time"
)

// Report is a binary export downloaded from the backend
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// WeeklySummary downloads the weekly activity report
func (c *Client) WeeklySummary(ctx context.Context) (*Report, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/reports/weekly-summary", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	res, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &Report{
		Filename:    reportFilename(res.Header.Get("Content-Disposition")),
		ContentType: res.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func reportFilename(disposition string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	return "weekly_report_" + time.Now().Format("2006-01-02_15-04-05") + ".xlsx"
}
