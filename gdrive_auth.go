package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// initGDriveSvc initializes the Google Drive service with OAuth 2.0 credentials
func initGDriveSvc(credentialsFile, tokenFile string) *drive.Service {
	if credentialsFile == "" {
		log.Fatalf("Google credentials file not specified")
	}

	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		log.Fatalf("Error reading Google credentials file: %v", err)
	}

	config, err := google.ConfigFromJSON(credentials, drive.DriveReadonlyScope)
	if err != nil {
		log.Fatalf("Error creating OAuth config: %v", err)
	}

	if os.Getenv("GOOGLE_REDIRECT_URL") != "" {
		config.RedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	}

	needFetchToken := false
	var token *oauth2.Token
	if _, err := os.Stat(tokenFile); os.IsNotExist(err) {
		log.Warnf("Token file not found. Fetching new token.")
		needFetchToken = true
	} else {
		token, err = tokenFromFile(tokenFile)
		if err != nil {
			log.Warnf("Error loading OAuth token from file: %v", err)
			needFetchToken = true
		}
	}

	if needFetchToken {
		token, err = fetchInitialToken(config)
		if err != nil {
			log.Fatalf("Failed to fetch initial gdrive token: %v", err)
		}
		if err := saveTokenToFile(token, tokenFile); err != nil {
			log.Fatalf("%v", err)
		}
	}

	client := config.Client(context.Background(), token)
	driveService, err := drive.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		log.Fatalf("Error creating Google Drive service: %v", err)
	}

	return driveService
}

// fetchInitialToken starts an HTTP server to receive the OAuth authorization code and exchanges it for an OAuth token
func fetchInitialToken(config *oauth2.Config) (*oauth2.Token, error) {
	authCodeChannel := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", authCodeHandler(authCodeChannel))

	HTTP_PORT := "8888"
	if os.Getenv("HTTP_PORT") != "" {
		HTTP_PORT = os.Getenv("HTTP_PORT")
	}

	server := &http.Server{
		Addr:    ":" + HTTP_PORT,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Error starting HTTP server: %v", err)
		}
	}()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	log.Error("Go to the following link in your browser, authorize the app, and return:")
	log.Errorf("%s", authURL)
	authCode := <-authCodeChannel

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	token, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		return nil, fmt.Errorf("error exchanging authorization code for token: %w", err)
	}

	return token, nil
}

// authCodeHandler hands the first authorization code to codes; codes needs a buffer of one.
// Later callbacks are refused instead of blocking.
func authCodeHandler(codes chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCode := r.URL.Query().Get("code")
		if authCode == "" {
			http.Error(w, "Authorization code not found", http.StatusBadRequest)
			return
		}
		select {
		case codes <- authCode:
			fmt.Fprintf(w, "Authorization successful! You can close this window.")
		default:
			http.Error(w, "Authorization already received", http.StatusConflict)
		}
	}
}

// saveTokenToFile saves an OAuth 2.0 token to a file
func saveTokenToFile(token *oauth2.Token, tokenFile string) error {
	f, err := os.Create(tokenFile)
	if err != nil {
		return fmt.Errorf("error creating token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("error encoding token to file: %w", err)
	}
	return f.Close()
}

// tokenFromFile loads a previously obtained OAuth 2.0 token from a file and validates its validity
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("error opening token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("error decoding token: %w", err)
	}

	// A refresh token lets the oauth2 client renew an expired access token
	if token.Expiry.Before(time.Now()) && token.RefreshToken == "" {
		return nil, fmt.Errorf("OAuth token has expired")
	}

	return token, nil
}
