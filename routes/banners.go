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

func bannerList(c *fiber.Ctx) error {
	var banners []models.Banner
	if err := db.DB.Order("`order`, id").Find(&banners).Error; err != nil {
		return serverError(c, "Failed to get banners")
	}
	return c.JSON(fiber.Map{
		"banners":    banners,
		"navigation": Sidebar(c.Route().Name),
	})
}

func bannerCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action":     "create",
		"navigation": Sidebar(c.Route().Name),
	})
}

func bannerCreate(c *fiber.Ctx) error {
	file := formFile(c, "image")
	draft, errs := forms.ParseBanner(c.FormValue, file != nil)
	if errs != nil {
		return validationFailed(c, errs)
	}

	imagePath, err := blobs.Save(file, storage.PrefixBanners)
	if err != nil {
		return validationFailed(c, forms.FieldErrors{"image": err.Error()})
	}

	banner := models.Banner{Image: imagePath, Order: draft.Order}
	if err := db.DB.Create(&banner).Error; err != nil {
		blobs.Delete(imagePath)
		return serverError(c, "Failed to create banner")
	}

	return redirectWithNotice(c, "/banners/", "Banner created successfully")
}

func bannerEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Banner")
	}

	var banner models.Banner
	if err := db.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Banner")
		}
		return serverError(c, "Failed to get banner")
	}

	return c.JSON(fiber.Map{
		"action":     "edit",
		"banner":     banner,
		"navigation": Sidebar(c.Route().Name),
	})
}

func bannerEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Banner")
	}

	var banner models.Banner
	if err := db.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Banner")
		}
		return serverError(c, "Failed to get banner")
	}

	file := formFile(c, "image")
	draft, errs := forms.ParseBanner(c.FormValue, file != nil || banner.Image != "")
	if errs != nil {
		return validationFailed(c, errs)
	}

	newImage := ""
	if file != nil {
		if newImage, err = blobs.Save(file, storage.PrefixBanners); err != nil {
			return validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	oldImage := banner.Image
	banner.Order = draft.Order
	if newImage != "" {
		banner.Image = newImage
	}

	if err := db.DB.Save(&banner).Error; err != nil {
		if newImage != "" {
			blobs.Delete(newImage)
		}
		return serverError(c, "Failed to update banner")
	}

	if newImage != "" && oldImage != "" {
		blobs.Delete(oldImage)
	}
	return redirectWithNotice(c, "/banners/", "Banner updated successfully")
}

func bannerDeleteConfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Banner")
	}

	var banner models.Banner
	if err := db.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Banner")
		}
		return serverError(c, "Failed to get banner")
	}

	return c.JSON(fiber.Map{
		"banner":     banner,
		"navigation": Sidebar(c.Route().Name),
	})
}

func bannerDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Banner")
	}

	var banner models.Banner
	if err := db.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Banner")
		}
		return serverError(c, "Failed to get banner")
	}

	if err := db.DB.Delete(&banner).Error; err != nil {
		return serverError(c, "Failed to delete banner")
	}
	if banner.Image != "" {
		blobs.Delete(banner.Image)
	}

	return redirectWithNotice(c, "/banners/", "Banner deleted successfully")
}
