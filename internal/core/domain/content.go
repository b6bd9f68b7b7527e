package domain

import "time"

// AboutDocumentID is the id of the single about document.
const AboutDocumentID = "me"

// ContactMessage is an unthreaded message left through the contact form.
type ContactMessage struct {
	ID      string    `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name"`
	Email   string    `json:"email" bson:"email"`
	Message string    `json:"message" bson:"message"`
	Date    time.Time `json:"date" bson:"date"`
}

type Project struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	TechStack   []string  `json:"tech_stack" bson:"tech_stack"`
	LiveURL     string    `json:"live_url" bson:"live_url"`
	DemoURL     string    `json:"demo_url" bson:"demo_url"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Service is a catalog offering. Price holds canonical USD text such as
// "Starts at $499".
type Service struct {
	ID          string   `json:"id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Price       string   `json:"price" bson:"price"`
	Icon        string   `json:"icon" bson:"icon"`
	Features    []string `json:"features" bson:"features"`
}

type Review struct {
	ID        string    `json:"id" bson:"_id"`
	ProjectID string    `json:"project_id" bson:"project_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// AboutData is the owner's profile shown on the public pages.
type AboutData struct {
	ID                 string   `json:"id" bson:"_id"`
	Name               string   `json:"name" bson:"name"`
	Title              string   `json:"title" bson:"title"`
	Overview           string   `json:"overview" bson:"overview"`
	Bio                string   `json:"bio" bson:"bio"`
	Vision             string   `json:"vision" bson:"vision"`
	Skills             []string `json:"skills" bson:"skills"`
	Values             []string `json:"values" bson:"values"`
	ExperienceYears    string   `json:"experience_years" bson:"experience_years"`
	ProjectsCount      string   `json:"projects_count" bson:"projects_count"`
	Education          string   `json:"education" bson:"education"`
	Location           string   `json:"location" bson:"location"`
	Email              string   `json:"email" bson:"email"`
	ImageURL           string   `json:"image_url" bson:"image_url"`
	WorkspaceImageURL  string   `json:"workspace_image_url,omitempty" bson:"workspace_image_url,omitempty"`
	HardwareImageURL   string   `json:"hardware_image_url,omitempty" bson:"hardware_image_url,omitempty"`
	FaviconURL         string   `json:"favicon_url,omitempty" bson:"favicon_url,omitempty"`
	SEOThumbnailURL    string   `json:"seo_thumbnail_url,omitempty" bson:"seo_thumbnail_url,omitempty"`
	GoogleConsoleToken string   `json:"google_console_token,omitempty" bson:"google_console_token,omitempty"`
}

// LocationData is the visitor's derived location. It is never persisted.
type LocationData struct {
	Country        string  `json:"country"`
	CountryCode    string  `json:"country_code"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	Region         string  `json:"region"`
	IP             string  `json:"ip"`
	ExchangeRate   float64 `json:"exchange_rate"`
}
