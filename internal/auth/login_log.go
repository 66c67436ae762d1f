package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blogware/auth-service/internal/model"
	"github.com/mssola/user_agent"
	"go.uber.org/zap"
)

var httpGet = http.Get

// LogLogin records one authentication attempt. It is invoked by the
// transport layer after Authenticate and never influences its outcome; a
// location lookup failure degrades to an empty location rather than
// failing the request.
func (a *AuthClient) LogLogin(ctx context.Context, args *model.LoginLogArgs) error {
	location := ""
	ipAPIResponse, err := getLocationFromIP(args.IpAddress)
	if err != nil {
		a.logger.Warn("failed to resolve login location", zap.Error(err))
	} else {
		location = ipAPIResponse.City
		if ipAPIResponse.Country != "" {
			location = fmt.Sprintf("%s, %s", ipAPIResponse.City, ipAPIResponse.Country)
		}
	}

	userAgentInfo := parseUserAgentInfo(args.UserAgent)
	device := userAgentInfo.Browser
	if userAgentInfo.OS != "" {
		device = fmt.Sprintf("%s, %s", userAgentInfo.Browser, userAgentInfo.OS)
	}

	status := "failure"
	if args.Succeeded {
		status = "success"
	}

	loginLog := &model.LoginLog{
		Email:      args.Email,
		UserID:     args.UserID,
		IpAddress:  args.IpAddress,
		Location:   location,
		UserAgent:  args.UserAgent,
		Device:     device,
		DeviceType: userAgentInfo.DeviceType,
		Status:     status,
	}

	if err := a.store.CreateLoginLog(ctx, loginLog); err != nil {
		a.logger.Error("failed to record login log", zap.Error(err))
		return fmt.Errorf("create login log: %w", err)
	}

	return nil
}

type IPAPIResponse struct {
	Status     string  `json:"status"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Zip        string  `json:"zip"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Timezone   string  `json:"timezone"`
	Query      string  `json:"query"`
	Message    string  `json:"message"`
}

func getLocationFromIP(ip string) (*IPAPIResponse, error) {
	url := fmt.Sprintf("http://ip-api.com/json/%s", ip)
	resp, err := httpGet(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IP location: %w", err)
	}
	defer resp.Body.Close()

	var data IPAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if data.Status != "success" {
		return nil, fmt.Errorf("ip-api error: %s", data.Message)
	}

	return &data, nil
}

type UserAgentInfo struct {
	DeviceType string // "mobile" or "desktop"
	Browser    string
	OS         string
}

func parseUserAgentInfo(userAgent string) UserAgentInfo {
	ua := user_agent.New(userAgent)

	browserName, _ := ua.Browser()

	deviceType := "desktop"
	if ua.Mobile() {
		deviceType = "mobile"
	}

	return UserAgentInfo{
		DeviceType: deviceType,
		Browser:    browserName,
		OS:         ua.OS(),
	}
}
