package common

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"cardtime.app/cardtime/core/datatable"
)

// BindDatatableRequest reads the DataTables form protocol from the posted
// request: draw/start/length, search[value], and the first order clause.
// order[0][column] is an index into columns[i][data], which carries the
// column name the client is sorting on.
func BindDatatableRequest(c *gin.Context) (datatable.Request, error) {
	req := datatable.Request{}

	var err error
	if req.Draw, err = formInt(c, "draw", 0); err != nil {
		return req, err
	}
	if req.Start, err = formInt(c, "start", 0); err != nil {
		return req, err
	}
	if req.Length, err = formInt(c, "length", 10); err != nil {
		return req, err
	}
	if req.Start < 0 || req.Length < 0 {
		return req, fmt.Errorf("start and length must not be negative")
	}

	req.Search = c.PostForm("search[value]")

	if idx := c.PostForm("order[0][column]"); idx != "" {
		req.SortColumn = c.PostForm(fmt.Sprintf("columns[%s][data]", idx))
		req.SortDir = c.PostForm("order[0][dir]")
	}

	return req, nil
}

func formInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field '%s' must be an integer", key)
	}
	return n, nil
}
