package routes

import (
	"errors"

	"shopadmin/db"
	"shopadmin/forms"
	"shopadmin/models"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func landingList(c *fiber.Ctx) error {
	search := c.Query("search")
	section := c.Query("section")

	query := db.DB.Model(&models.LandingPageContent{})
	if search != "" {
		query = query.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if section != "" {
		query = query.Where("section_type = ?", section)
	}

	var contents []models.LandingPageContent
	if err := query.Order("sort_order").Find(&contents).Error; err != nil {
		return serverError(c, "Failed to get landing contents")
	}

	return c.JSON(fiber.Map{
		"contents":       contents,
		"search":         search,
		"section_filter": section,
		"section_types":  models.SectionTypes,
		"navigation":     Sidebar(c.Route().Name),
	})
}

func landingCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action":        "create",
		"section_types": models.SectionTypes,
		"navigation":    Sidebar(c.Route().Name),
	})
}

func landingCreate(c *fiber.Ctx) error {
	draft, errs := forms.ParseLanding(c.FormValue, true)
	if errs != nil {
		return validationFailed(c, errs)
	}

	imagePath := ""
	if file := formFile(c, "image"); file != nil {
		var err error
		if imagePath, err = blobs.Save(file, storage.PrefixLanding); err != nil {
			return validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	content := models.LandingPageContent{
		Title:       draft.Title,
		SectionType: draft.SectionType,
		Subtitle:    draft.Subtitle,
		Content:     draft.Content,
		Image:       imagePath,
		ButtonText:  draft.ButtonText,
		ButtonLink:  draft.ButtonLink,
		SortOrder:   draft.SortOrder,
		IsActive:    draft.IsActive,
	}
	if err := db.DB.Create(&content).Error; err != nil {
		if imagePath != "" {
			blobs.Delete(imagePath)
		}
		return serverError(c, "Failed to create landing content")
	}

	return redirectWithNotice(c, "/landing-contents/", "Landing content created successfully")
}

func landingEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Landing content")
	}

	var content models.LandingPageContent
	if err := db.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Landing content")
		}
		return serverError(c, "Failed to get landing content")
	}

	return c.JSON(fiber.Map{
		"action":        "edit",
		"content":       content,
		"section_types": models.SectionTypes,
		"navigation":    Sidebar(c.Route().Name),
	})
}

func landingEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Landing content")
	}

	var content models.LandingPageContent
	if err := db.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Landing content")
		}
		return serverError(c, "Failed to get landing content")
	}

	draft, errs := forms.ParseLanding(c.FormValue, content.IsActive)
	if errs != nil {
		return validationFailed(c, errs)
	}

	newImage := ""
	if file := formFile(c, "image"); file != nil {
		if newImage, err = blobs.Save(file, storage.PrefixLanding); err != nil {
			return validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	oldImage := content.Image
	content.Title = draft.Title
	content.SectionType = draft.SectionType
	content.Subtitle = draft.Subtitle
	content.Content = draft.Content
	content.ButtonText = draft.ButtonText
	content.ButtonLink = draft.ButtonLink
	content.SortOrder = draft.SortOrder
	content.IsActive = draft.IsActive
	if newImage != "" {
		content.Image = newImage
	}

	if err := db.DB.Save(&content).Error; err != nil {
		if newImage != "" {
			blobs.Delete(newImage)
		}
		return serverError(c, "Failed to update landing content")
	}

	if newImage != "" && oldImage != "" {
		blobs.Delete(oldImage)
	}
	return redirectWithNotice(c, "/landing-contents/", "Landing content updated successfully")
}

func landingDeleteConfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Landing content")
	}

	var content models.LandingPageContent
	if err := db.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Landing content")
		}
		return serverError(c, "Failed to get landing content")
	}

	return c.JSON(fiber.Map{
		"content":    content,
		"navigation": Sidebar(c.Route().Name),
	})
}

func landingDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Landing content")
	}

	var content models.LandingPageContent
	if err := db.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Landing content")
		}
		return serverError(c, "Failed to get landing content")
	}

	if err := db.DB.Delete(&content).Error; err != nil {
		return serverError(c, "Failed to delete landing content")
	}
	if content.Image != "" {
		blobs.Delete(content.Image)
	}

	return redirectWithNotice(c, "/landing-contents/", "Landing content deleted successfully")
}
