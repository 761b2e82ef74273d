package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/help-intl/aidcluster/internal/cluster"
)

// predictRequest carries the nine raw-scale indicators. Pointers distinguish
// a missing field from a legitimate zero.
type predictRequest struct {
	ChildMort *float64 `json:"child_mort"`
	Exports   *float64 `json:"exports"`
	Health    *float64 `json:"health"`
	Imports   *float64 `json:"imports"`
	Income    *float64 `json:"income"`
	Inflation *float64 `json:"inflation"`
	LifeExpec *float64 `json:"life_expec"`
	TotalFer  *float64 `json:"total_fer"`
	Gdpp      *float64 `json:"gdpp"`
}

// row returns the values in canonical feature order, or the name of the
// first missing field.
func (r *predictRequest) row() ([]float64, string) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"child_mort", r.ChildMort},
		{"exports", r.Exports},
		{"health", r.Health},
		{"imports", r.Imports},
		{"income", r.Income},
		{"inflation", r.Inflation},
		{"life_expec", r.LifeExpec},
		{"total_fer", r.TotalFer},
		{"gdpp", r.Gdpp},
	}
	row := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f.v == nil {
			return nil, f.name
		}
		row = append(row, *f.v)
	}
	return row, ""
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	row, missing := req.row()
	if missing != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: " + missing})
		return
	}

	scaled, err := s.arts.Scaler.TransformRow(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	label, err := s.arts.KMeans.Predict(scaled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"cluster": label}
	if profile, ok := s.arts.Profiles[cluster.MethodKMeans][label]; ok {
		resp["profile"] = profile
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleClusters(c *gin.Context) {
	out := make(map[string]map[int]map[string]float64, len(s.arts.Profiles))
	for method, profile := range s.arts.Profiles {
		out[string(method)] = profile
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out, "units": "standardized"})
}

type countryLabels struct {
	Country string                 `json:"country"`
	Labels  map[cluster.Method]int `json:"clusters"`
}

func (s *Server) handleCountries(c *gin.Context) {
	raw := s.arts.Raw
	out := make([]countryLabels, raw.Rows())
	for i := 0; i < raw.Rows(); i++ {
		labels := make(map[cluster.Method]int, len(s.arts.Labels))
		for method, ls := range s.arts.Labels {
			labels[method] = ls[i]
		}
		out[i] = countryLabels{Country: raw.Country(i), Labels: labels}
	}
	c.JSON(http.StatusOK, gin.H{"countries": out})
}

func (s *Server) handlePriority(c *gin.Context) {
	entries := s.arts.Priority
	if entries == nil {
		entries = []cluster.PriorityEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"priority": entries, "count": len(entries)})
}
