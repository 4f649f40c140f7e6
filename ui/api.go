package ui

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"degviz/adapters/excel"
	"degviz/domain/gene"
	"degviz/internal"
	"degviz/internal/config"
	"degviz/internal/errors"
	"degviz/internal/filter"
	"degviz/internal/plot"
	"degviz/internal/summary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// API serves the JSON endpoints. The only shared state is the current
// table, replaced wholesale on each upload under the mutex; every
// request runs one synchronous pass over a snapshot of it.
type API struct {
	cfg    *config.Config
	reader *excel.DataReader
	log    *internal.Logger

	mu        sync.RWMutex
	datasetID string
	table     *gene.Table
}

// NewAPI creates the API with its schema resolver wired from config.
func NewAPI(cfg *config.Config) *API {
	return &API{
		cfg:    cfg,
		reader: excel.NewDataReader(gene.NewResolver(cfg.Data.ConditionSuffix)),
		log:    internal.DefaultLogger,
	}
}

// Engine builds the gin engine. Routes are relative; the chi app mounts
// this under /api.
func (s *API) Engine() *gin.Engine {
	gin.SetMode(s.cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = int64(s.cfg.Data.MaxUploadMB) << 20

	router.POST("/datasets", s.handleUpload)
	router.GET("/charts", s.handleCharts)
	router.GET("/summary", s.handleSummary)
	router.GET("/preview", s.handlePreview)
	router.GET("/genes", s.handleGenes)
	router.GET("/columns", s.handleColumns)
	return router
}

// snapshot returns the current dataset under a read lock.
func (s *API) snapshot() (string, *gene.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasetID, s.table, s.table != nil
}

// Dataset reports the loaded dataset for the index page.
func (s *API) Dataset() (id string, genes int, loaded bool) {
	id, table, ok := s.snapshot()
	if !ok {
		return "", 0, false
	}
	return id, table.Len(), true
}

func (s *API) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.LoadFailed("no file in upload", err))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.LoadFailed("failed to read upload", err))
		return
	}
	defer src.Close()

	table, err := s.reader.Read(src, fileHeader.Filename)
	if err != nil {
		s.log.Warn("upload rejected: %v", err)
		respondError(c, err)
		return
	}
	if err := gene.Validate(table, gene.RequiredColumns()); err != nil {
		s.log.Warn("upload rejected: %v", err)
		respondError(c, err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.datasetID = id
	s.table = table
	s.mu.Unlock()

	s.log.Info("loaded dataset %s: %d genes, %d columns", id, table.Len(), len(table.Columns()))
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": id,
		"genes":      table.Len(),
		"columns":    table.Columns(),
	})
}

func (s *API) handleCharts(c *gin.Context) {
	id, table, ok := s.snapshot()
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return
	}

	params, err := filterParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	req, err := chartRequest(c, table)
	if err != nil {
		respondError(c, err)
		return
	}

	filtered := filter.Apply(table, params)
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": id,
		"charts":     plot.BuildAll(filtered, req),
		"summary":    summary.Compute(table, filtered),
	})
}

func (s *API) handleSummary(c *gin.Context) {
	id, table, ok := s.snapshot()
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return
	}
	params, err := filterParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": id,
		"summary":    summary.Compute(table, filter.Apply(table, params)),
	})
}

func (s *API) handlePreview(c *gin.Context) {
	id, table, ok := s.snapshot()
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return
	}
	params, err := filterParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := s.cfg.Data.PreviewRows
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filtered := filter.Apply(table, params)
	rows := make([]gin.H, 0, limit)
	for _, r := range filtered.Records() {
		if len(rows) == limit {
			break
		}
		rows = append(rows, gin.H{"gene": r.Symbol, "values": r.Values})
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": id,
		"filtered":   filtered.Len(),
		"columns":    filtered.Columns(),
		"rows":       rows,
	})
}

// handleGenes searches the full dataset's symbols, feeding the
// annotation candidate list (search runs before filtering, so a gene
// can be picked even if the current thresholds hide it).
func (s *API) handleGenes(c *gin.Context) {
	_, table, ok := s.snapshot()
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return
	}
	matches := table.SearchSymbols(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"count": len(matches),
		"genes": matches,
	})
}

func (s *API) handleColumns(c *gin.Context) {
	_, table, ok := s.snapshot()
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return
	}

	ranges := make(map[string]summary.Range)
	if r, ok := summary.ColumnRange(table, gene.ColMI); ok {
		ranges[gene.ColMI] = r
	}
	if r, ok := summary.ColumnRange(table, gene.ColLog2FC); ok {
		ranges[gene.ColLog2FC] = r
	}

	var highlights []string
	for _, col := range gene.HighlightAllowList() {
		if table.HasColumn(col) {
			highlights = append(highlights, col)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":           table.Columns(),
		"ranges":            ranges,
		"highlight_options": highlights,
	})
}

// filterParams reads the threshold and regulation query parameters into
// an explicit filter bundle.
func filterParams(c *gin.Context) (filter.Params, error) {
	params := filter.Params{PValMax: 1.0}

	if v := c.Query("mi_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.InvalidInput("mi_min must be a number")
		}
		params.MIMin = f
	}
	if v := c.Query("pval_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return params, errors.InvalidInput("pval_max must be a number in [0,1]")
		}
		params.PValMax = f
	}

	reg, err := filter.ParseRegulation(c.Query("regulation"))
	if err != nil {
		return params, err
	}
	params.Regulation = reg
	return params, nil
}

// chartRequest reads the generalized-variant and annotation inputs.
func chartRequest(c *gin.Context, table *gene.Table) (plot.Request, error) {
	req := plot.Request{ShowAnnotations: true}

	if v := c.Query("highlight"); v != "" {
		if !allowedHighlight(v) {
			return req, errors.InvalidInput("highlight must be one of: " + strings.Join(gene.HighlightAllowList(), ", "))
		}
		req.Highlight = v
	}
	for _, key := range []string{"x", "y"} {
		if v := c.Query(key); v != "" {
			if !table.HasColumn(v) {
				return req, errors.InvalidInput(key + " column not in dataset: " + v)
			}
		}
	}
	req.X = c.Query("x")
	req.Y = c.Query("y")

	if v := c.Query("annotate"); v != "" {
		for _, symbol := range strings.Split(v, ",") {
			if symbol = strings.TrimSpace(symbol); symbol != "" {
				req.Annotate = append(req.Annotate, symbol)
			}
		}
	}
	if v := c.Query("show_annotations"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.InvalidInput("show_annotations must be a boolean")
		}
		req.ShowAnnotations = show
	}
	return req, nil
}

func allowedHighlight(col string) bool {
	for _, allowed := range gene.HighlightAllowList() {
		if col == allowed {
			return true
		}
	}
	return false
}

// respondError maps the two recoverable error kinds (plus input
// validation) onto HTTP statuses. LoadError and SchemaError halt the
// upload; nothing downstream runs.
func respondError(c *gin.Context, err error) {
	if schemaErr, ok := errors.AsSchemaError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   schemaErr.Error(),
			"code":    errors.CodeSchemaMissing,
			"missing": schemaErr.Missing,
		})
		return
	}

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeLoadFailed, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
