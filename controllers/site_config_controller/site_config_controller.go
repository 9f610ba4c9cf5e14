package site_config_controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/site_config_models"
)

// Config keys for presentation content.
const (
	homeBannerKey      = "home_banner"
	workshopBannerKey  = "workshop_banner"
	workshopContentKey = "workshop_content"
)

const bannerFolder = "carkumbh/banners"

// SiteConfigController manages the mutable site configuration: banners,
// workshop copy and the event-package catalog.
type SiteConfigController struct {
	DB         *pgxpool.Pool
	Cloudinary clients.CloudinaryClientWrapper
	Catalog    *site_config_models.EventPackageCatalog
}

func NewSiteConfigController(db *pgxpool.Pool, cld clients.CloudinaryClientWrapper) *SiteConfigController {
	return &SiteConfigController{
		DB:         db,
		Cloudinary: cld,
		Catalog:    site_config_models.NewEventPackageCatalog(db),
	}
}

func (sc *SiteConfigController) getStringConfig(c *gin.Context, key, field string) {
	raw, err := site_config_models.GetValue(c.Request.Context(), sc.DB, key)
	if err != nil {
		if err != site_config_models.ErrConfigNotFound {
			logger.ErrorLogger.Errorf("Failed to read config %s: %v", key, err)
		}
		c.JSON(http.StatusOK, gin.H{field: nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{field: jsonString(raw)})
}

// jsonString unquotes a JSON-encoded string value, returning the raw text
// for anything that is not a quoted string.
func jsonString(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (sc *SiteConfigController) updateBannerConfig(c *gin.Context, key, field string) {
	fileHeader, err := c.FormFile("banner")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, _, err := sc.Cloudinary.UploadImage(c.Request.Context(), file, bannerFolder)
	if err != nil {
		logger.ErrorLogger.Errorf("Banner upload failed for %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload banner"})
		return
	}

	if err := site_config_models.SetValue(c.Request.Context(), sc.DB, key, url); err != nil {
		logger.ErrorLogger.Errorf("Failed to store config %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{field: url})
}

// GetBanner returns the home banner URL.
func (sc *SiteConfigController) GetBanner(c *gin.Context) {
	sc.getStringConfig(c, homeBannerKey, "bannerUrl")
}

// UpdateBanner uploads a new home banner image.
func (sc *SiteConfigController) UpdateBanner(c *gin.Context) {
	sc.updateBannerConfig(c, homeBannerKey, "bannerUrl")
}

// GetWorkshopBanner returns the workshop banner URL.
func (sc *SiteConfigController) GetWorkshopBanner(c *gin.Context) {
	sc.getStringConfig(c, workshopBannerKey, "bannerUrl")
}

// UpdateWorkshopBanner uploads a new workshop banner image.
func (sc *SiteConfigController) UpdateWorkshopBanner(c *gin.Context) {
	sc.updateBannerConfig(c, workshopBannerKey, "bannerUrl")
}

// GetWorkshopContent returns the workshop copy blob as stored.
func (sc *SiteConfigController) GetWorkshopContent(c *gin.Context) {
	raw, err := site_config_models.GetValue(c.Request.Context(), sc.DB, workshopContentKey)
	if err != nil {
		if err != site_config_models.ErrConfigNotFound {
			logger.ErrorLogger.Errorf("Failed to read workshop content: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"content": nil})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// UpdateWorkshopContent replaces the workshop copy blob.
func (sc *SiteConfigController) UpdateWorkshopContent(c *gin.Context) {
	var content map[string]interface{}
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid content"})
		return
	}

	if err := site_config_models.SetValue(c.Request.Context(), sc.DB, workshopContentKey, content); err != nil {
		logger.ErrorLogger.Errorf("Failed to store workshop content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update content"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// GetEventPackages returns the current package catalog (defaults when the
// config row is absent or unusable).
func (sc *SiteConfigController) GetEventPackages(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Catalog.ListPackages(c.Request.Context()))
}

// UpdateEventPackages replaces the package catalog. The payload must parse
// as a non-empty package list; a bad catalog here would break order
// creation for everyone.
func (sc *SiteConfigController) UpdateEventPackages(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package list"})
		return
	}

	entries, err := site_config_models.ParseEventPackages(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package list"})
		return
	}

	if err := site_config_models.SetValue(c.Request.Context(), sc.DB, site_config_models.EventPackagesKey, entries); err != nil {
		logger.ErrorLogger.Errorf("Failed to store event packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update packages"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
