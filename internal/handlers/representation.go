package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/models"
	"github.com/kennywood/park-api/internal/utils"
)

// ParkAreaResponse is the JSON shape of a park area
type ParkAreaResponse struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Name  string `json:"name"`
	Theme string `json:"theme"`
}

// AttractionResponse is the JSON shape of an attraction
type AttractionResponse struct {
	ID   int64            `json:"id"`
	URL  string           `json:"url"`
	Name string           `json:"name"`
	Area ParkAreaResponse `json:"area"`
}

// ItineraryResponse is the JSON shape of an itinerary item
type ItineraryResponse struct {
	ID         int64              `json:"id"`
	URL        string             `json:"url"`
	StartTime  string             `json:"starttime"`
	Attraction AttractionResponse `json:"attraction"`
}

// representer maps models to response schemas with absolute self links
type representer struct {
	base string
}

// newRepresenter uses publicBaseURL when set, otherwise the request's own origin
func newRepresenter(c *gin.Context, publicBaseURL string) representer {
	if publicBaseURL != "" {
		return representer{base: publicBaseURL}
	}
	return representer{base: utils.RequestBaseURL(c)}
}

func (r representer) link(collection string, id int64) string {
	return fmt.Sprintf("%s/api/v1/%s/%d", r.base, collection, id)
}

func (r representer) parkArea(area *models.ParkArea) ParkAreaResponse {
	return ParkAreaResponse{
		ID:    area.ID,
		URL:   r.link("parkareas", area.ID),
		Name:  area.Name,
		Theme: area.Theme,
	}
}

func (r representer) attraction(attraction *models.Attraction) AttractionResponse {
	area := attraction.Area
	if area == nil {
		area = &models.ParkArea{ID: attraction.AreaID}
	}
	return AttractionResponse{
		ID:   attraction.ID,
		URL:  r.link("attractions", attraction.ID),
		Name: attraction.Name,
		Area: r.parkArea(area),
	}
}

func (r representer) itinerary(itinerary *models.Itinerary) ItineraryResponse {
	attraction := itinerary.Attraction
	if attraction == nil {
		attraction = &models.Attraction{ID: itinerary.AttractionID}
	}
	return ItineraryResponse{
		ID:         itinerary.ID,
		URL:        r.link("itineraryitems", itinerary.ID),
		StartTime:  itinerary.StartTime.UTC().Format(time.RFC3339Nano),
		Attraction: r.attraction(attraction),
	}
}

// itineraries never returns nil so an empty list encodes as []
func (r representer) itineraries(items []models.Itinerary) []ItineraryResponse {
	out := make([]ItineraryResponse, 0, len(items))
	for i := range items {
		out = append(out, r.itinerary(&items[i]))
	}
	return out
}
