// Package controller holds the HTTP handlers for the bootcamp directory API.
package controller

import (
	"strconv"

	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"

	"github.com/labstack/echo/v4"
)

// listOptionsFrom reads the select, sort, page and limit query parameters.
func listOptionsFrom(ctx echo.Context) repository.ListOptions {
	opts := repository.ListOptions{
		Select: ctx.QueryParam("select"),
		Sort:   ctx.QueryParam("sort"),
	}
	if v, err := strconv.ParseInt(ctx.QueryParam("page"), 10, 64); err == nil {
		opts.Page = v
	}
	if v, err := strconv.ParseInt(ctx.QueryParam("limit"), 10, 64); err == nil {
		opts.Limit = v
	}
	return opts.Normalized()
}
