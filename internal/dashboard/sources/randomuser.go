package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const defaultRandomUserURL = "https://randomuser.me/api/"

// RandomUser generates fake user profiles.
type RandomUser struct {
	baseURL string
	fetcher *Fetcher
}

func NewRandomUser(f *Fetcher, baseURL string) *RandomUser {
	if baseURL == "" {
		baseURL = defaultRandomUserURL
	}
	return &RandomUser{baseURL: baseURL, fetcher: f}
}

type usersPayload struct {
	// randomuser.me reports failures as a bare string.
	Error   string `json:"error"`
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location struct {
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"location"`
		Dob struct {
			Age *int `json:"age"`
		} `json:"dob"`
		Login struct {
			Username string `json:"username"`
		} `json:"login"`
		Picture struct {
			Large string `json:"large"`
		} `json:"picture"`
	} `json:"results"`
}

// Users is the adapter for ?results=n.
func (p *RandomUser) Users() dashboard.Adapter[usersPayload, dashboard.UserRecord] {
	return dashboard.Adapter[usersPayload, dashboard.UserRecord]{
		Source:  dashboard.SourceUsers,
		Prepare: prepareCount(1, 5000, "Please enter a number of users between 1 and 5000"),
		Fetch: func(ctx context.Context, q dashboard.Query, _ *dashboard.Session) (usersPayload, error) {
			var payload usersPayload
			values := url.Values{}
			values.Set("results", q.Get(dashboard.ParamCount))
			_, err := p.fetcher.GetJSON(ctx, buildURL(p.baseURL, "", values), &payload)
			return payload, err
		},
		Validate: func(raw usersPayload) error {
			if raw.Error != "" {
				return dashboard.ProviderError(raw.Error)
			}
			if len(raw.Results) == 0 {
				return dashboard.NotFoundError("No users found")
			}
			return nil
		},
		Extract: func(raw usersPayload) []dashboard.UserRecord {
			out := make([]dashboard.UserRecord, 0, len(raw.Results))
			for _, u := range raw.Results {
				out = append(out, dashboard.UserRecord{
					FirstName: u.Name.First,
					LastName:  u.Name.Last,
					Email:     u.Email,
					Picture:   u.Picture.Large,
					City:      u.Location.City,
					Country:   u.Location.Country,
					Phone:     u.Phone,
					Age:       u.Dob.Age,
					Username:  u.Login.Username,
				})
			}
			return out
		},
	}
}

// prepareCount validates the count param against [1, upper], substituting def when it is blank.
func prepareCount(def, upper int, message string) func(dashboard.Query) (dashboard.Query, error) {
	return func(q dashboard.Query) (dashboard.Query, error) {
		raw := q.Get(dashboard.ParamCount)
		if raw == "" {
			return q.With(dashboard.ParamCount, strconv.Itoa(def)), nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, dashboard.InputError("%s", message)
		}
		if err := validate.Var(n, "min=1,max="+strconv.Itoa(upper)); err != nil {
			return q, inputError(err, message)
		}
		return q.With(dashboard.ParamCount, strconv.Itoa(n)), nil
	}
}
