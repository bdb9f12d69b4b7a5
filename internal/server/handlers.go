package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jward/namepop"
)

// Response shapes match the frontend contract: snake_case keys, per-gender
// objects keyed "male"/"female", null for absent values.

type knownYearsResponse struct {
	EarliestYear int `json:"earliest_year"`
	LatestYear   int `json:"latest_year"`
}

type nameInfoPayload struct {
	Gender string `json:"gender"`
	Rank   int    `json:"rank"`
	Count  int    `json:"count"`
}

type yearGenderPayload struct {
	TotalBirths int             `json:"total_births"`
	Data        nameInfoPayload `json:"data"`
	Ratio       float64         `json:"ratio"`
}

type yearPayload struct {
	Male   yearGenderPayload `json:"male"`
	Female yearGenderPayload `json:"female"`
}

type peakPayload struct {
	Male   *int `json:"male"`
	Female *int `json:"female"`
}

type nameRequest struct {
	Name  string `json:"name"`
	Years []int  `json:"years"`
}

type nameResponse struct {
	Years         map[int]yearPayload `json:"years"`
	Peak          peakPayload         `json:"peak"`
	GenderRatio   *float64            `json:"gender_ratio"`
	TypicalGender *string             `json:"typical_gender"`
}

// HandleKnownYears reports the inclusive range of loaded years.
func (s *Server) HandleKnownYears(w http.ResponseWriter, r *http.Request) {
	yr, err := s.queries.KnownYearRange()
	if err != nil {
		if errors.Is(err, namepop.ErrEmptyDatabase) {
			writeError(w, http.StatusNotFound, "no data loaded")
			return
		}
		s.logger.Error("known years failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, knownYearsResponse{
		EarliestYear: yr.Earliest,
		LatestYear:   yr.Latest,
	})
}

// HandleKnownNames lists every known name, sorted.
func (s *Server) HandleKnownNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.queries.KnownNames()
	if err != nil {
		s.logger.Error("known names failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// HandleLoad computes the aggregate report for one name over the requested
// years. The name is normalized before lookup.
func (s *Server) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := namepop.NormalizeName(req.Name)
	report, err := s.queries.NameReport(name, req.Years)
	if err != nil {
		if errors.Is(err, namepop.ErrNoYears) {
			writeError(w, http.StatusBadRequest, "no years requested")
			return
		}
		s.logger.Error("load failed", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, buildNameResponse(report))
}

func buildNameResponse(report *namepop.Report) nameResponse {
	resp := nameResponse{
		Years:       make(map[int]yearPayload, len(report.Years)),
		GenderRatio: report.GenderRatio,
	}
	for year, stats := range report.Years {
		payload := namepop.MapItems(stats, func(g namepop.Gender, s namepop.YearGenderStats) yearGenderPayload {
			return yearGenderPayload{
				TotalBirths: s.TotalBirths,
				Data: nameInfoPayload{
					Gender: g.String(),
					Rank:   s.Info.Rank,
					Count:  s.Info.Count,
				},
				Ratio: s.Ratio,
			}
		})
		resp.Years[year] = yearPayload{Male: payload.Male, Female: payload.Female}
	}
	resp.Peak = peakPayload{
		Male:   peakYearOf(report.Peak.Male),
		Female: peakYearOf(report.Peak.Female),
	}
	if report.TypicalGender != nil {
		typical := report.TypicalGender.String()
		resp.TypicalGender = &typical
	}
	return resp
}

func peakYearOf(p *namepop.PeakYear) *int {
	if p == nil {
		return nil
	}
	year := p.Year
	return &year
}
